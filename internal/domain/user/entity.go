package user

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes the two kinds of account
type Type string

const (
	TypeCustomer Type = "customer"
	TypeWorker   Type = "worker"
)

func (t Type) IsValid() bool {
	return t == TypeCustomer || t == TypeWorker
}

// Category is the trade a worker offers
type Category string

const (
	CategoryElectrician  Category = "electrician"
	CategoryPlumber      Category = "plumber"
	CategoryCarpenter    Category = "carpenter"
	CategoryACTechnician Category = "ac_technician"
	CategoryTailor       Category = "tailor"
	CategoryMechanic     Category = "mechanic"
	CategoryPainter      Category = "painter"
	CategoryCleaner      Category = "cleaner"
	CategoryGardener     Category = "gardener"
	CategorySecurity     Category = "security"
	CategoryOther        Category = "other"
)

var categories = []Category{
	CategoryElectrician,
	CategoryPlumber,
	CategoryCarpenter,
	CategoryACTechnician,
	CategoryTailor,
	CategoryMechanic,
	CategoryPainter,
	CategoryCleaner,
	CategoryGardener,
	CategorySecurity,
	CategoryOther,
}

// Categories returns every known category
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Availability is a worker's self-reported readiness for new bookings
type Availability string

const (
	AvailabilityAvailable     Availability = "available"
	AvailabilityBusy          Availability = "busy"
	AvailabilityNotTakingJobs Availability = "not_taking_jobs"
)

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityNotTakingJobs:
		return true
	}
	return false
}

type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
}

type PortfolioItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Guarantor struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Relationship string  `json:"relationship"`
	IDNumber     *string `json:"idNumber,omitempty"`
}

type IDVerification struct {
	IDType     string     `json:"idType"`
	IDNumber   string     `json:"idNumber"`
	IDImageURL string     `json:"idImageUrl"`
	Status     string     `json:"status"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
}

// WorkerProfile holds the fields only workers carry
type WorkerProfile struct {
	Category       Category
	Skills         []string
	Experience     int
	HourlyRate     float64
	Location       *Location
	Availability   Availability
	Rating         float64
	ReviewCount    int
	Portfolio      []PortfolioItem
	Certifications []string
	Guarantor      *Guarantor
	IDVerification *IDVerification
}

// User represents an account in the domain
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	Type         Type
	IsVerified   bool
	ProfileImage *string

	// Set only when Type is TypeWorker
	Worker *WorkerProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsWorker() bool {
	return u.Type == TypeWorker && u.Worker != nil
}

// Summary is the slice of a user embedded in other resources
type Summary struct {
	ID           uuid.UUID
	Name         string
	Phone        string
	ProfileImage *string
	Category     Category
	Rating       float64
}

func (u *User) Summary() *Summary {
	s := &Summary{
		ID:           u.ID,
		Name:         u.Name,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
	}
	if u.Worker != nil {
		s.Category = u.Worker.Category
		s.Rating = u.Worker.Rating
	}
	return s
}

// CategoryCount is the number of available workers in a category
type CategoryCount struct {
	Category Category
	Count    int
}
