package student

import (
	"time"

	"github.com/classdesk/backend/internal/domain/billing"
	"github.com/classdesk/backend/internal/domain/student"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Student DTOs
// =============================================================================

// CreateStudentRequest represents a request to enroll a new student
type CreateStudentRequest struct {
	Name                string           `json:"name" binding:"required,min=1,max=200"`
	Email               string           `json:"email" binding:"omitempty,email,max=200"`
	Phone               string           `json:"phone" binding:"max=50"`
	Category            string           `json:"category" binding:"required"`
	Course              string           `json:"course" binding:"required"`
	Year                int              `json:"year" binding:"min=0"`
	Semester            int              `json:"semester" binding:"min=0"`
	Batch               string           `json:"batch" binding:"max=100"`
	SchoolName          string           `json:"school_name" binding:"max=200"`
	Address             string           `json:"address" binding:"max=500"`
	ParentContact       string           `json:"parent_contact" binding:"max=50"`
	TotalFee            *decimal.Decimal `json:"total_fee"`
	InstallmentCount    int              `json:"installment_count" binding:"min=0"`
	Birthday            *string          `json:"birthday"`
	EnrollmentDate      *string          `json:"enrollment_date"`
	EnrollmentYearStart int              `json:"enrollment_year_start"`
	EnrollmentYearEnd   int              `json:"enrollment_year_end"`
	SubjectsEnrolled    []string         `json:"subjects_enrolled"`
}

// UpdateStudentRequest represents a request to update a student
type UpdateStudentRequest struct {
	Name                *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email               *string          `json:"email" binding:"omitempty,email,max=200"`
	Phone               *string          `json:"phone" binding:"omitempty,max=50"`
	Category            *string          `json:"category"`
	Course              *string          `json:"course"`
	Year                *int             `json:"year"`
	Semester            *int             `json:"semester"`
	Batch               *string          `json:"batch" binding:"omitempty,max=100"`
	SchoolName          *string          `json:"school_name" binding:"omitempty,max=200"`
	Address             *string          `json:"address" binding:"omitempty,max=500"`
	ParentContact       *string          `json:"parent_contact" binding:"omitempty,max=50"`
	TotalFee            *decimal.Decimal `json:"total_fee"`
	Birthday            *string          `json:"birthday"`
	EnrollmentDate      *string          `json:"enrollment_date"`
	EnrollmentYearStart *int             `json:"enrollment_year_start"`
	EnrollmentYearEnd   *int             `json:"enrollment_year_end"`
	SubjectsEnrolled    []string         `json:"subjects_enrolled"`
	Status              *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// InstallmentDTO is one amount/due-date tuple of a plan
type InstallmentDTO struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"due_date"`
}

// ReplaceInstallmentsRequest swaps in a hand-edited installment plan
type ReplaceInstallmentsRequest struct {
	Installments []InstallmentDTO `json:"installments" binding:"required"`
}

// RebuildInstallmentsRequest rebuilds the plan over a new count
type RebuildInstallmentsRequest struct {
	Count int `json:"count" binding:"required"`
}

// LedgerResponse is the derived fee ledger for a student
type LedgerResponse struct {
	TotalFee  decimal.Decimal `json:"total_fee"`
	PaidFee   decimal.Decimal `json:"paid_fee"`
	DueAmount decimal.Decimal `json:"due_amount"`
	FeeStatus string          `json:"fee_status"`
}

// StudentResponse represents a student in API responses.
// DueAmount and FeeStatus are derived on every read, never stored.
type StudentResponse struct {
	ID                  uuid.UUID        `json:"id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	Category            string           `json:"category"`
	Course              string           `json:"course"`
	Year                int              `json:"year"`
	Semester            int              `json:"semester"`
	Batch               string           `json:"batch,omitempty"`
	SchoolName          string           `json:"school_name,omitempty"`
	Address             string           `json:"address,omitempty"`
	ParentContact       string           `json:"parent_contact,omitempty"`
	Birthday            *time.Time       `json:"birthday,omitempty"`
	EnrollmentDate      *time.Time       `json:"enrollment_date,omitempty"`
	EnrollmentYearStart int              `json:"enrollment_year_start,omitempty"`
	EnrollmentYearEnd   int              `json:"enrollment_year_end,omitempty"`
	SubjectsEnrolled    []string         `json:"subjects_enrolled"`
	Status              string           `json:"status"`
	TotalFee            decimal.Decimal  `json:"total_fee"`
	PaidFee             decimal.Decimal  `json:"paid_fee"`
	DueAmount           decimal.Decimal  `json:"due_amount"`
	FeeStatus           string           `json:"fee_status"`
	LastPayment         *time.Time       `json:"last_payment,omitempty"`
	Installments        []InstallmentDTO `json:"installments"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Version             int              `json:"version"`
}

// StudentListResponse represents a list item for students
type StudentListResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Category    string          `json:"category"`
	Course      string          `json:"course"`
	Year        int             `json:"year"`
	Status      string          `json:"status"`
	TotalFee    decimal.Decimal `json:"total_fee"`
	PaidFee     decimal.Decimal `json:"paid_fee"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	FeeStatus   string          `json:"fee_status"`
	LastPayment *time.Time      `json:"last_payment,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StudentListFilter represents filter options for student list
type StudentListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	Course     string `form:"course"`
	Year       int    `form:"year"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	FeePending *bool  `form:"fee_pending"`
	Page       int    `form:"page" binding:"min=0"`
	PageSize   int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryChangeResponse carries the cascading option reset after a
// category switch on the enrollment form.
type CategoryChangeResponse struct {
	CourseOptions []string `json:"course_options"`
	YearOptions   []int    `json:"year_options"`
	ResetCourse   string   `json:"reset_course"`
	ResetYear     int      `json:"reset_year"`
}

// ToLedgerResponse converts a domain ledger to LedgerResponse
func ToLedgerResponse(l billing.Ledger) LedgerResponse {
	return LedgerResponse{
		TotalFee:  l.TotalFee,
		PaidFee:   l.PaidFee,
		DueAmount: l.DueAmount,
		FeeStatus: l.FeeStatus.String(),
	}
}

// ToInstallmentDTOs converts a domain plan to DTOs
func ToInstallmentDTOs(plan billing.InstallmentPlan) []InstallmentDTO {
	dtos := make([]InstallmentDTO, len(plan))
	for i, inst := range plan {
		dtos[i] = InstallmentDTO{Amount: inst.Amount, DueDate: inst.DueDate}
	}
	return dtos
}

// toDomainPlan converts installment DTOs back to a domain plan
func toDomainPlan(dtos []InstallmentDTO) billing.InstallmentPlan {
	plan := make(billing.InstallmentPlan, len(dtos))
	for i, dto := range dtos {
		plan[i] = billing.Installment{Amount: dto.Amount, DueDate: dto.DueDate}
	}
	return plan
}

// ToStudentResponse converts a domain Student to StudentResponse
func ToStudentResponse(s *student.Student) StudentResponse {
	ledger := s.Ledger()
	return StudentResponse{
		ID:                  s.ID,
		Name:                s.Name,
		Email:               s.Email,
		Phone:               s.Phone,
		Category:            s.Category.String(),
		Course:              s.Course,
		Year:                s.Year,
		Semester:            s.Semester,
		Batch:               s.Batch,
		SchoolName:          s.SchoolName,
		Address:             s.Address,
		ParentContact:       s.ParentContact,
		Birthday:            s.Birthday,
		EnrollmentDate:      s.EnrollmentDate,
		EnrollmentYearStart: s.EnrollmentYearStart,
		EnrollmentYearEnd:   s.EnrollmentYearEnd,
		SubjectsEnrolled:    s.SubjectsEnrolled,
		Status:              s.Status.String(),
		TotalFee:            s.TotalFee,
		PaidFee:             s.PaidFee,
		DueAmount:           ledger.DueAmount,
		FeeStatus:           ledger.FeeStatus.String(),
		LastPayment:         s.LastPayment,
		Installments:        ToInstallmentDTOs(s.Installments),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Version:             s.Version,
	}
}

// ToStudentListResponse converts a domain Student to StudentListResponse
func ToStudentListResponse(s *student.Student) StudentListResponse {
	ledger := s.Ledger()
	return StudentListResponse{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       s.Phone,
		Category:    s.Category.String(),
		Course:      s.Course,
		Year:        s.Year,
		Status:      s.Status.String(),
		TotalFee:    s.TotalFee,
		PaidFee:     s.PaidFee,
		DueAmount:   ledger.DueAmount,
		FeeStatus:   ledger.FeeStatus.String(),
		LastPayment: s.LastPayment,
		CreatedAt:   s.CreatedAt,
	}
}

// ToStudentListResponses converts domain Students to list responses
func ToStudentListResponses(students []student.Student) []StudentListResponse {
	responses := make([]StudentListResponse, len(students))
	for i := range students {
		responses[i] = ToStudentListResponse(&students[i])
	}
	return responses
}

// ToCategoryChangeResponse converts a domain category change to its DTO
func ToCategoryChangeResponse(c student.CategoryChange) CategoryChangeResponse {
	return CategoryChangeResponse{
		CourseOptions: c.CourseOptions,
		YearOptions:   c.YearOptions,
		ResetCourse:   c.ResetCourse,
		ResetYear:     c.ResetYear,
	}
}
