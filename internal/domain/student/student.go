package student

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/shared"
	"github.com/classdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the enrollment status of a student
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// StringList is a slice of strings stored as JSONB
type StringList []string

// Value implements driver.Valuer for GORM to store as JSONB
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for GORM to read from JSONB
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList: unsupported type")
	}

	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Student is the enrollment and billing aggregate. It exclusively owns its
// installment plan; payment entries live in a separate append-only
// collection correlated by student ID.
//
// The due amount and fee status are intentionally absent: they are derived
// through Ledger() on every read and never stored.
type Student struct {
	shared.BaseAggregateRoot
	Name                string                  `json:"name"`
	Email               string                  `json:"email,omitempty"`
	Phone               string                  `json:"phone,omitempty"`
	Category            Category                `json:"category"`
	Course              string                  `json:"course"`
	Year                int                     `json:"year"`
	Semester            int                     `json:"semester,omitempty"`
	Batch               string                  `json:"batch,omitempty"`
	SchoolName          string                  `json:"school_name,omitempty"`
	Address             string                  `json:"address,omitempty"`
	ParentContact       string                  `json:"parent_contact,omitempty"`
	Birthday            *time.Time              `json:"birthday,omitempty"`
	EnrollmentDate      *time.Time              `json:"enrollment_date,omitempty"`
	EnrollmentYearStart int                     `json:"enrollment_year_start,omitempty"`
	EnrollmentYearEnd   int                     `json:"enrollment_year_end,omitempty"`
	SubjectsEnrolled    StringList              `json:"subjects_enrolled,omitempty"`
	Status              Status                  `json:"status"`
	TotalFee            decimal.Decimal         `json:"total_fee"`
	PaidFee             decimal.Decimal         `json:"paid_fee"`
	LastPayment         *time.Time              `json:"last_payment,omitempty"`
	Installments        billing.InstallmentPlan `json:"installments"`
}

// NewStudent enrolls a new student. Name, category and course are
// required; the course must belong to the category's course set.
func NewStudent(
	name string,
	email string,
	phone string,
	category Category,
	course string,
	year int,
	totalFee valueobject.Money,
) (*Student, error) {
	if err := validateClassification(name, category, course, year); err != nil {
		return nil, err
	}
	if totalFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Total fee cannot be negative")
	}

	s := &Student{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Category:          category,
		Course:            course,
		Year:              year,
		Status:            StatusActive,
		TotalFee:          totalFee.Amount(),
		PaidFee:           decimal.Zero,
		SubjectsEnrolled:  StringList{},
		Installments:      billing.InstallmentPlan{},
	}

	s.AddDomainEvent(NewStudentEnrolledEvent(s))

	return s, nil
}

func validateClassification(name string, category Category, course string, year int) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Student name is required")
	}
	if !category.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown category %q", category))
	}
	if course == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Course is required")
	}
	if !IsValidCourse(category, course) {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Course %q is not offered under category %q", course, category))
	}
	if !IsValidYear(category, year) {
		return shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Year %d is not selectable for category %q", year, category))
	}
	return nil
}

// Ledger derives the current due amount and fee status. Stored ledger
// fields are never trusted; this recomputes from the source amounts.
func (s *Student) Ledger() billing.Ledger {
	return billing.ComputeLedger(s.TotalFee, s.PaidFee)
}

// RecordPayment applies a received amount to the student's ledger and
// produces the matching immutable payment entry. The caller must persist
// both in one transaction.
func (s *Student) RecordPayment(
	amount valueobject.Money,
	date time.Time,
	method billing.PaymentMethod,
	description string,
) (*billing.Payment, error) {
	payment, err := billing.NewPayment(s.ID, s.Name, amount, date, method, description)
	if err != nil {
		return nil, err
	}

	s.PaidFee = s.PaidFee.Add(payment.Amount)
	paidOn := payment.PaymentDate
	s.LastPayment = &paidOn
	s.touch()

	return payment, nil
}

// UpdateProfile changes the contact and classification fields.
// The same classification rules as enrollment apply.
func (s *Student) UpdateProfile(name, email, phone string, category Category, course string, year, semester int) error {
	if err := validateClassification(name, category, course, year); err != nil {
		return err
	}
	s.Name = name
	s.Email = email
	s.Phone = phone
	s.Category = category
	s.Course = course
	s.Year = year
	s.Semester = semester
	s.touch()
	return nil
}

// ReviseTotalFee explicitly revises the agreed fee. The installment plan
// amounts are rebuilt (destructively) over the current plan size so the
// plan keeps covering the new total.
func (s *Student) ReviseTotalFee(totalFee valueobject.Money) error {
	if totalFee.IsNegative() {
		return shared.NewDomainError("INVALID_FEE", "Total fee cannot be negative")
	}
	s.TotalFee = totalFee.Amount()
	if len(s.Installments) > 0 {
		s.Installments = s.Installments.Rebuild(s.TotalFee, len(s.Installments))
	}
	s.touch()
	return nil
}

// RebuildInstallments replaces the plan with count equal-split
// installments of the current total fee. Out-of-range counts are clamped.
func (s *Student) RebuildInstallments(count int) {
	s.Installments = s.Installments.Rebuild(s.TotalFee, count)
	s.touch()
}

// AppendInstallment adds one zero-amount, undated installment to the plan
func (s *Student) AppendInstallment() {
	s.Installments = s.Installments.Append()
	s.touch()
}

// ReplaceInstallments swaps in a hand-edited plan after validating its dates
func (s *Student) ReplaceInstallments(plan billing.InstallmentPlan) error {
	if err := plan.Validate(); err != nil {
		return shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	s.Installments = plan
	s.touch()
	return nil
}

// SetBackground sets the batch label, school and guardian contact details
func (s *Student) SetBackground(batch, schoolName, address, parentContact string) {
	s.Batch = batch
	s.SchoolName = schoolName
	s.Address = address
	s.ParentContact = parentContact
	s.touch()
}

// SetBirthday sets the student's date of birth
func (s *Student) SetBirthday(birthday *time.Time) {
	s.Birthday = birthday
	s.touch()
}

// SetEnrollment sets the enrollment date and academic year range
func (s *Student) SetEnrollment(date *time.Time, yearStart, yearEnd int) {
	s.EnrollmentDate = date
	s.EnrollmentYearStart = yearStart
	s.EnrollmentYearEnd = yearEnd
	s.touch()
}

// SetSubjects replaces the enrolled subject list
func (s *Student) SetSubjects(subjects []string) {
	s.SubjectsEnrolled = StringList(subjects)
	s.touch()
}

// Deactivate marks the student inactive (left the center)
func (s *Student) Deactivate() {
	s.Status = StatusInactive
	s.touch()
}

// Activate marks the student active again
func (s *Student) Activate() {
	s.Status = StatusActive
	s.touch()
}

// IsActive returns true if the student is currently enrolled
func (s *Student) IsActive() bool {
	return s.Status == StatusActive
}

// HasBirthdayOn reports whether the student's birthday falls on the given
// day, matched by month and day only.
func (s *Student) HasBirthdayOn(day time.Time) bool {
	if s.Birthday == nil {
		return false
	}
	_, bm, bd := s.Birthday.Date()
	_, dm, dd := day.Date()
	return bm == dm && bd == dd
}

// InstallmentsDueOn returns the plan entries that fall due on the given day
func (s *Student) InstallmentsDueOn(day time.Time) []billing.Installment {
	return s.Installments.DueOn(day)
}

// GetTotalFeeMoney returns the total fee as Money value object
func (s *Student) GetTotalFeeMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.TotalFee)
}

// GetPaidFeeMoney returns the paid fee as Money value object
func (s *Student) GetPaidFeeMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.PaidFee)
}

func (s *Student) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
