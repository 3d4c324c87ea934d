// Package locale provides the localized labels, date formats and user-facing
// messages for the supported document languages.
package locale

import (
	"fmt"
	"time"

	"github.com/jonathan/application-tailor/internal/types"
)

// Key identifies a localized label or message.
type Key string

// Section headings and labels.
const (
	LabelSummary    Key = "summary"
	LabelExperience Key = "experience"
	LabelEducation  Key = "education"
	LabelSkills     Key = "skills"
	LabelLanguages  Key = "languages"
	LabelInterests  Key = "interests"
	LabelContact    Key = "contact"
	LabelPresent    Key = "present"
	LabelPage       Key = "page"
	LabelOverview   Key = "overview"
	LabelCompany    Key = "company"
	LabelPosition   Key = "position"
	LabelStatus     Key = "status"
	LabelAppliedAt  Key = "applied_at"
	LabelContactPer Key = "contact_person"
	LabelSubject    Key = "subject"
	LabelSalutation Key = "salutation"
	LabelClosing    Key = "closing"
)

// User-facing messages.
const (
	MsgPolicyRejected   Key = "msg_policy_rejected"
	MsgGenerationFailed Key = "msg_generation_failed"
	MsgNoProfile        Key = "msg_no_profile"
	MsgNoTemplate       Key = "msg_no_template"
	MsgNoJob            Key = "msg_no_job"
	MsgRenderFailed     Key = "msg_render_failed"
	MsgIncomplete       Key = "msg_incomplete"
)

var tables = map[types.Locale]map[Key]string{
	types.LocaleDE: {
		LabelSummary:    "Profil",
		LabelExperience: "Berufserfahrung",
		LabelEducation:  "Ausbildung",
		LabelSkills:     "Kenntnisse",
		LabelLanguages:  "Sprachen",
		LabelInterests:  "Interessen",
		LabelContact:    "Kontakt",
		LabelPresent:    "heute",
		LabelPage:       "Seite %d von %d",
		LabelOverview:   "Bewerbungsübersicht",
		LabelCompany:    "Unternehmen",
		LabelPosition:   "Position",
		LabelStatus:     "Status",
		LabelAppliedAt:  "Beworben am",
		LabelContactPer: "Ansprechpartner",
		LabelSubject:    "Bewerbung als %s",
		LabelSalutation: "Sehr geehrte Damen und Herren,",
		LabelClosing:    "Mit freundlichen Grüßen",

		MsgPolicyRejected:   "Die Anfrage wurde von den Inhaltsrichtlinien des Textgenerators abgelehnt. Bitte passen Sie die Angaben an und versuchen Sie es erneut.",
		MsgGenerationFailed: "Die Generierung ist fehlgeschlagen: %s",
		MsgNoProfile:        "Bitte wählen Sie zuerst ein Profil aus.",
		MsgNoTemplate:       "Bitte wählen Sie zuerst eine Vorlage aus.",
		MsgNoJob:            "Für ein Anschreiben muss eine Stelle ausgewählt sein.",
		MsgRenderFailed:     "Das Dokument konnte nicht gesetzt werden (Feld: %s).",
		MsgIncomplete:       "Einige Abschnitte konnten nicht erkannt werden: %s",
	},
	types.LocaleEN: {
		LabelSummary:    "Profile",
		LabelExperience: "Work Experience",
		LabelEducation:  "Education",
		LabelSkills:     "Skills",
		LabelLanguages:  "Languages",
		LabelInterests:  "Interests",
		LabelContact:    "Contact",
		LabelPresent:    "present",
		LabelPage:       "Page %d of %d",
		LabelOverview:   "Applications Overview",
		LabelCompany:    "Company",
		LabelPosition:   "Position",
		LabelStatus:     "Status",
		LabelAppliedAt:  "Applied on",
		LabelContactPer: "Contact",
		LabelSubject:    "Application for the position of %s",
		LabelSalutation: "Dear Hiring Team,",
		LabelClosing:    "Kind regards",

		MsgPolicyRejected:   "The request was rejected by the text generator's content policy. Please adjust your input and try again.",
		MsgGenerationFailed: "Generation failed: %s",
		MsgNoProfile:        "Please select a profile first.",
		MsgNoTemplate:       "Please select a template first.",
		MsgNoJob:            "A cover letter requires a selected job.",
		MsgRenderFailed:     "The document could not be laid out (field: %s).",
		MsgIncomplete:       "Some sections could not be recognized: %s",
	},
}

var statusLabels = map[types.Locale]map[types.ApplicationStatus]string{
	types.LocaleDE: {
		types.StatusDraft:     "Entwurf",
		types.StatusApplied:   "Beworben",
		types.StatusInterview: "Gespräch",
		types.StatusOffer:     "Angebot",
		types.StatusRejected:  "Absage",
	},
	types.LocaleEN: {
		types.StatusDraft:     "Draft",
		types.StatusApplied:   "Applied",
		types.StatusInterview: "Interview",
		types.StatusOffer:     "Offer",
		types.StatusRejected:  "Rejected",
	},
}

var monthNames = map[types.Locale][12]string{
	types.LocaleDE: {"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
	types.LocaleEN: {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
}

var shortMonthNames = map[types.Locale][12]string{
	types.LocaleDE: {"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sep.", "Okt.", "Nov.", "Dez."},
	types.LocaleEN: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// Normalize maps unknown locales to English.
func Normalize(loc types.Locale) types.Locale {
	if _, ok := tables[loc]; ok {
		return loc
	}
	return types.LocaleEN
}

// Supported reports whether loc has a table.
func Supported(loc types.Locale) bool {
	_, ok := tables[loc]
	return ok
}

// Label returns the localized text for key.
func Label(loc types.Locale, key Key) string {
	if s, ok := tables[Normalize(loc)][key]; ok {
		return s
	}
	return string(key)
}

// Message formats the localized message for key with args.
func Message(loc types.Locale, key Key, args ...any) string {
	if len(args) == 0 {
		return Label(loc, key)
	}
	return fmt.Sprintf(Label(loc, key), args...)
}

// StatusLabel returns the localized application status.
func StatusLabel(loc types.Locale, status types.ApplicationStatus) string {
	if s, ok := statusLabels[Normalize(loc)][status]; ok {
		return s
	}
	return string(status)
}

// MonthName returns the full month name.
func MonthName(loc types.Locale, m time.Month) string {
	return monthNames[Normalize(loc)][m-1]
}

// ShortMonthName returns the abbreviated month name.
func ShortMonthName(loc types.Locale, m time.Month) string {
	return shortMonthNames[Normalize(loc)][m-1]
}

// FormatDate formats a full date the way a letter is dated in loc:
// "18. Oktober 2026" or "October 18, 2026".
func FormatDate(loc types.Locale, t time.Time) string {
	if Normalize(loc) == types.LocaleDE {
		return fmt.Sprintf("%d. %s %d", t.Day(), MonthName(loc, t.Month()), t.Year())
	}
	return fmt.Sprintf("%s %d, %d", MonthName(loc, t.Month()), t.Day(), t.Year())
}

// FormatNumericDate formats a date for tables: "18.10.2026" or "2026-10-18".
func FormatNumericDate(loc types.Locale, t time.Time) string {
	if Normalize(loc) == types.LocaleDE {
		return t.Format("02.01.2006")
	}
	return t.Format("2006-01-02")
}
