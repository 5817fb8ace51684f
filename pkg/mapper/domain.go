// Package mapper turns school domain records into the French variable bags
// document templates consume. Each mapping emits both naming families
// (ecole_*/organisation_*, eleve_*/etudiant_*) so older templates keep
// working.
package mapper

import "time"

// Organization is the school or training center issuing the document.
type Organization struct {
	Name               string
	LogoURL            string
	Address            string
	City               string
	PostalCode         string
	Phone              string
	Email              string
	Website            string
	SIRET              string
	RCS                string
	Region             string
	DeclarationNumber  string
	RepresentativeName string
}

// Student is an enrolled learner.
type Student struct {
	FirstName     string
	LastName      string
	StudentNumber string
	DateOfBirth   *time.Time
	ClassName     string
	PhotoURL      string
	Address       string
	Phone         string
	Email         string
}

// FullName joins first and last name.
func (s Student) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// Formation is a single training course.
type Formation struct {
	Name              string
	Code              string
	DurationHours     int
	Price             float64
	Currency          string
	Description       string
	Objectives        string
	TargetAudience    string
	Prerequisites     string
	Content           string
	PedagogicalTeam   string
	Resources         string
	Materials         string
	Certification     string
	QualityIndicators string
}

// Program groups formations into a curriculum.
type Program struct {
	Name        string
	Code        string
	Description string
	Objectives  string
	Formations  []Formation
}

// TotalDurationHours sums the duration of every formation in the program.
func (p Program) TotalDurationHours() int {
	total := 0
	for _, f := range p.Formations {
		total += f.DurationHours
	}
	return total
}

// Session is a scheduled run of a formation.
type Session struct {
	Name            string
	StartDate       *time.Time
	EndDate         *time.Time
	StartTime       string
	EndTime         string
	Location        string
	EnrollmentCount int
}

// InvoiceItem is one billed line.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Invoice is a billing document issued to a student.
type Invoice struct {
	InvoiceNumber string
	Amount        float64
	TaxAmount     float64
	TotalAmount   float64
	Currency      string
	IssueDate     *time.Time
	DueDate       *time.Time
	Items         []InvoiceItem
}

// Payment settles an invoice, fully or partially.
type Payment struct {
	PaymentNumber string
	Amount        float64
	Currency      string
	Method        string
	PaidAt        *time.Time
}

// AcademicYear names the school year a document belongs to.
type AcademicYear struct {
	Name string
}
