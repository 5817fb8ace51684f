package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/goliatone/go-docgen/internal/frdate"
	"github.com/goliatone/go-docgen/pkg/vars"
)

// Data bundles the records a document can draw variables from. Every field
// is optional; missing records map to empty strings so templates degrade to
// blanks instead of failing.
type Data struct {
	Organization *Organization
	Student      *Student
	Session      *Session
	Formation    *Formation
	Program      *Program
	Invoice      *Invoice
	Payment      *Payment
	AcademicYear *AcademicYear

	// Locale drives spelled-out amounts. Defaults to "fr".
	Locale string

	// Now overrides the generation timestamp, mainly for tests.
	Now time.Time
}

func (d Data) now() time.Time {
	if d.Now.IsZero() {
		return time.Now()
	}
	return d.Now
}

func (d Data) locale() string {
	if d.Locale == "" {
		return "fr"
	}
	return d.Locale
}

// Extract builds the full variable bag: every family the templates document,
// with both historical naming schemes filled in.
func Extract(data Data) vars.Bag {
	now := data.now()
	bag := vars.Bag{
		"date_emission":     frdate.Short(now),
		"date_aujourd_hui":  frdate.Short(now),
		"date_jour":         frdate.Short(now),
		"date_generation":   frdate.Short(now),
		"annee_courante":    strconv.Itoa(now.Year()),
		"annee_actuelle":    strconv.Itoa(now.Year()),
		"heure":             now.Format("15:04"),
		"langue":            data.locale(),
		"numero_document":   documentNumber(data, now),
		"numero_page":       "1",
		"total_pages":       "1",
	}

	addOrganization(bag, data.Organization)
	addStudent(bag, data.Student)
	addAcademicYear(bag, data.AcademicYear, now)
	addSession(bag, data.Session)
	addFormation(bag, data.Formation)
	addProgram(bag, data.Program)
	addInvoice(bag, data.Invoice, data.locale())
	addPayment(bag, data.Payment)
	return bag
}

// DocumentType selects the variable family a template type needs.
type DocumentType string

const (
	DocumentInvoice     DocumentType = "invoice"
	DocumentQuote       DocumentType = "quote"
	DocumentCertificate DocumentType = "certificate"
	DocumentContract    DocumentType = "contract"
	DocumentReport      DocumentType = "report"
	DocumentOther       DocumentType = "other"
)

// ForDocumentType maps the records relevant to the document type. Unknown
// types fall back to the base school and student variables.
func ForDocumentType(docType DocumentType, data Data) vars.Bag {
	switch docType {
	case DocumentInvoice, DocumentQuote:
		if data.Invoice != nil {
			return InvoiceVariables(data)
		}
	case DocumentCertificate, DocumentContract, DocumentReport, DocumentOther:
		if data.Student != nil {
			return StudentVariables(data)
		}
		if data.Session != nil {
			return SessionVariables(data)
		}
	}
	return Extract(Data{
		Organization: data.Organization,
		Student:      data.Student,
		Locale:       data.Locale,
		Now:          data.Now,
	})
}

// StudentVariables maps a student centered document: certificates,
// attestations, enrollment contracts.
func StudentVariables(data Data) vars.Bag {
	return Extract(Data{
		Organization: data.Organization,
		Student:      data.Student,
		Session:      data.Session,
		Formation:    data.Formation,
		Program:      data.Program,
		AcademicYear: data.AcademicYear,
		Locale:       data.Locale,
		Now:          data.Now,
	})
}

// InvoiceVariables maps a billing document.
func InvoiceVariables(data Data) vars.Bag {
	return Extract(Data{
		Organization: data.Organization,
		Student:      data.Student,
		Invoice:      data.Invoice,
		Locale:       data.Locale,
		Now:          data.Now,
	})
}

// PaymentVariables maps a payment receipt.
func PaymentVariables(data Data) vars.Bag {
	return Extract(Data{
		Organization: data.Organization,
		Student:      data.Student,
		Invoice:      data.Invoice,
		Payment:      data.Payment,
		Locale:       data.Locale,
		Now:          data.Now,
	})
}

// SessionVariables maps a session centered document: convocations,
// attendance sheets.
func SessionVariables(data Data) vars.Bag {
	return Extract(Data{
		Organization: data.Organization,
		Session:      data.Session,
		Formation:    data.Formation,
		Program:      data.Program,
		AcademicYear: data.AcademicYear,
		Locale:       data.Locale,
		Now:          data.Now,
	})
}

func documentNumber(data Data, now time.Time) string {
	if data.Invoice != nil && data.Invoice.InvoiceNumber != "" {
		return data.Invoice.InvoiceNumber
	}
	if data.Payment != nil && data.Payment.PaymentNumber != "" {
		return data.Payment.PaymentNumber
	}
	return fmt.Sprintf("DOC-%d", now.UnixMilli())
}

func addOrganization(bag vars.Bag, org *Organization) {
	if org == nil {
		org = &Organization{}
	}
	bag["ecole_nom"] = org.Name
	bag["ecole_logo"] = org.LogoURL
	bag["ecole_adresse"] = org.Address
	bag["ecole_ville"] = org.City
	bag["ecole_code_postal"] = org.PostalCode
	bag["ecole_telephone"] = org.Phone
	bag["ecole_email"] = org.Email
	bag["ecole_site_web"] = org.Website
	bag["ecole_siret"] = org.SIRET
	bag["ecole_rcs"] = org.RCS
	bag["ecole_region"] = org.Region
	bag["ecole_numero_declaration"] = org.DeclarationNumber
	bag["ecole_representant"] = org.RepresentativeName

	bag["organisation_nom"] = org.Name
	bag["organisation_logo"] = org.LogoURL
	bag["organisation_adresse"] = org.Address
	bag["organisation_telephone"] = org.Phone
	bag["organisation_email"] = org.Email
	bag["organisation_site_web"] = org.Website
}

func addStudent(bag vars.Bag, student *Student) {
	if student == nil {
		student = &Student{}
	}
	birth := shortDate(student.DateOfBirth)

	bag["eleve_nom"] = student.LastName
	bag["eleve_prenom"] = student.FirstName
	bag["eleve_numero"] = student.StudentNumber
	bag["eleve_date_naissance"] = birth
	bag["eleve_classe"] = student.ClassName
	bag["eleve_photo"] = student.PhotoURL
	bag["eleve_adresse"] = student.Address
	bag["eleve_telephone"] = student.Phone
	bag["eleve_email"] = student.Email

	bag["etudiant_nom"] = student.LastName
	bag["etudiant_prenom"] = student.FirstName
	bag["etudiant_nom_complet"] = student.FullName()
	bag["etudiant_numero"] = student.StudentNumber
	bag["etudiant_date_naissance"] = birth
	bag["etudiant_adresse"] = student.Address
	bag["etudiant_telephone"] = student.Phone
	bag["etudiant_email"] = student.Email
	bag["etudiant_photo"] = student.PhotoURL

	bag["classe_nom"] = student.ClassName
}

func addAcademicYear(bag vars.Bag, year *AcademicYear, now time.Time) {
	name := strconv.Itoa(now.Year())
	if year != nil && year.Name != "" {
		name = year.Name
	}
	bag["annee_academique"] = name
	bag["annee_scolaire"] = name
}

func addSession(bag vars.Bag, session *Session) {
	if session == nil {
		session = &Session{}
	}
	bag["session_nom"] = session.Name
	bag["session_debut"] = shortDate(session.StartDate)
	bag["session_fin"] = shortDate(session.EndDate)
	bag["session_date_debut"] = shortDate(session.StartDate)
	bag["session_date_fin"] = shortDate(session.EndDate)
	bag["session_lieu"] = session.Location

	if session.StartTime != "" && session.EndTime != "" {
		bag["session_horaires"] = session.StartTime + " - " + session.EndTime
	} else {
		bag["session_horaires"] = ""
	}
	if session.EnrollmentCount > 0 {
		bag["session_effectif"] = strconv.Itoa(session.EnrollmentCount)
	} else {
		bag["session_effectif"] = ""
	}
	if session.StartDate != nil && session.EndDate != nil {
		bag["formation_dates"] = shortDate(session.StartDate) + " - " + shortDate(session.EndDate)
	} else {
		bag["formation_dates"] = ""
	}

	bag["eleve_classe"] = orString(bag["eleve_classe"], session.Name)
}

func addFormation(bag vars.Bag, formation *Formation) {
	if formation == nil {
		formation = &Formation{}
	}
	bag["formation_nom"] = formation.Name
	bag["formation_code"] = formation.Code
	bag["formation_duree"] = hoursLabel(formation.DurationHours)
	bag["formation_prix"] = priceLabel(formation.Price, formation.Currency)
	bag["formation_description"] = formation.Description
	bag["formation_objectifs"] = formation.Objectives
	bag["formation_public_concerne"] = formation.TargetAudience
	bag["formation_prerequis"] = formation.Prerequisites
	bag["formation_contenu"] = formation.Content
	bag["formation_equipe_pedagogique"] = formation.PedagogicalTeam
	bag["formation_ressources"] = formation.Resources
	bag["formation_supports"] = formation.Materials
	bag["formation_qualite_et_resultats"] = formation.QualityIndicators
	bag["diplome_ou_certification"] = formation.Certification
}

func addProgram(bag vars.Bag, program *Program) {
	if program == nil {
		program = &Program{}
	}
	bag["programme_nom"] = program.Name
	bag["programme_code"] = program.Code
	bag["programme_description"] = program.Description
	bag["programme_objectifs"] = program.Objectives
	if len(program.Formations) > 0 {
		bag["programme_duree_totale"] = hoursLabel(program.TotalDurationHours())
		bag["programme_nombre_formations"] = strconv.Itoa(len(program.Formations))
	} else {
		bag["programme_duree_totale"] = ""
		bag["programme_nombre_formations"] = ""
	}
}

func addInvoice(bag vars.Bag, invoice *Invoice, locale string) {
	if invoice == nil {
		invoice = &Invoice{}
	}
	currency := invoice.Currency
	if currency == "" {
		currency = "EUR"
	}

	bag["numero_facture"] = invoice.InvoiceNumber
	bag["facture_numero"] = invoice.InvoiceNumber
	bag["facture_date_emission"] = shortDate(invoice.IssueDate)
	bag["facture_date_echeance"] = shortDate(invoice.DueDate)
	bag["date_echeance"] = shortDate(invoice.DueDate)
	if invoice.IssueDate != nil {
		bag["date_emission"] = shortDate(invoice.IssueDate)
	}

	bag["montant"] = money(invoice.Amount)
	bag["montant_ht"] = money(invoice.Amount)
	bag["montant_ttc"] = money(invoice.TotalAmount)
	bag["tva"] = money(invoice.TaxAmount)
	if invoice.Amount != 0 {
		bag["taux_tva"] = money(invoice.TaxAmount / invoice.Amount * 100)
	} else {
		bag["taux_tva"] = "0.00"
	}
	bag["facture_montant"] = money(invoice.Amount)
	bag["facture_tva"] = money(invoice.TaxAmount)
	bag["facture_total"] = money(invoice.TotalAmount)
	bag["facture_devise"] = currency
	bag["facture_items"] = itemsJSON(invoice.Items)

	if invoice.TotalAmount != 0 {
		bag["montant_lettres"] = AmountInWords(invoice.TotalAmount, locale)
	} else {
		bag["montant_lettres"] = ""
	}
}

func addPayment(bag vars.Bag, payment *Payment) {
	if payment == nil {
		return
	}
	bag["montant"] = money(payment.Amount)
	bag["date_paiement"] = shortDate(payment.PaidAt)
	bag["mode_paiement"] = payment.Method
}

func shortDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return frdate.Short(*t)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func hoursLabel(hours int) string {
	if hours <= 0 {
		return ""
	}
	return fmt.Sprintf("%d heures", hours)
}

func priceLabel(price float64, currency string) string {
	if price <= 0 {
		return ""
	}
	if currency == "" {
		currency = "EUR"
	}
	return money(price) + " " + currency
}

// itemsJSON serializes invoice lines for the loop expander, which parses
// JSON strings back into rows.
func itemsJSON(items []InvoiceItem) string {
	if len(items) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func orString(current any, fallback string) string {
	if s, ok := current.(string); ok && s != "" {
		return s
	}
	return fallback
}
