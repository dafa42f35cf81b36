/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package i18n

import "golang.org/x/text/language"

var translations = map[string]map[language.Tag]string{
	"Patients":                    {language.Spanish: "Pacientes", language.French: "Patients"},
	"Patient":                     {language.Spanish: "Paciente", language.French: "Patient"},
	"Name":                        {language.Spanish: "Nombre", language.French: "Nom"},
	"Squad":                       {language.Spanish: "Escuadra", language.French: "Escouade"},
	"Date of Birth":               {language.Spanish: "Fecha de nacimiento", language.French: "Date de naissance"},
	"Sex":                         {language.Spanish: "Sexo", language.French: "Sexe"},
	"No patients available.":      {language.Spanish: "No hay pacientes disponibles.", language.French: "Aucun patient disponible."},
	"History":                     {language.Spanish: "Historia", language.French: "Antécédents"},
	"Patient History / Lifestyle": {language.Spanish: "Historia / Estilo de vida del paciente", language.French: "Antécédents / Mode de vie du patient"},
	"Save":                        {language.Spanish: "Guardar", language.French: "Enregistrer"},
	"Edit":                        {language.Spanish: "Editar", language.French: "Modifier"},
	"Back To View":                {language.Spanish: "Volver a la vista", language.French: "Retour à la vue"},
	"Patient Summary":             {language.Spanish: "Resumen del paciente", language.French: "Résumé du patient"},
	"Recent Changes":              {language.Spanish: "Cambios recientes", language.French: "Modifications récentes"},
	"No changes recorded.":        {language.Spanish: "No hay cambios registrados.", language.French: "Aucune modification enregistrée."},
	"Last updated %s":             {language.Spanish: "Última actualización %s", language.French: "Dernière mise à jour %s"},
	"Required":                    {language.Spanish: "Obligatorio", language.French: "Obligatoire"},
	"Status":                      {language.Spanish: "Estado", language.French: "Statut"},
	"Date":                        {language.Spanish: "Fecha", language.French: "Date"},
	"Unassigned":                  {language.Spanish: "Sin asignar", language.French: "Non assigné"},
	"Unspecified":                 {language.Spanish: "Sin especificar", language.French: "Non précisé"},
	"Current":                     {language.Spanish: "Actual", language.French: "Actuel"},
	"Quit":                        {language.Spanish: "Dejó", language.French: "Arrêté"},
	"Never":                       {language.Spanish: "Nunca", language.French: "Jamais"},
	"N/A":                         {language.Spanish: "N/A", language.French: "N/A"},
	"General":                     {language.Spanish: "General", language.French: "Général"},
	"Family History":              {language.Spanish: "Antecedentes familiares", language.French: "Antécédents familiaux"},
	"Relatives":                   {language.Spanish: "Familiares", language.French: "Proches"},
	"Lifestyle":                   {language.Spanish: "Estilo de vida", language.French: "Mode de vie"},
	"Other":                       {language.Spanish: "Otros", language.French: "Autres"},
	"Sign in":                     {language.Spanish: "Iniciar sesión", language.French: "Se connecter"},
	"Sign out":                    {language.Spanish: "Cerrar sesión", language.French: "Se déconnecter"},
	"Username":                    {language.Spanish: "Usuario", language.French: "Nom d'utilisateur"},
	"Password":                    {language.Spanish: "Contraseña", language.French: "Mot de passe"},
	"Error":                       {language.Spanish: "Error", language.French: "Erreur"},
	"Back to patients":            {language.Spanish: "Volver a pacientes", language.French: "Retour aux patients"},
}
