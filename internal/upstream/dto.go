package upstream

import "github.com/spec-kit/hotel-front/internal/identity"

// LoginRequest is the credential payload for either identity class.
type LoginRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// RegisterRequest is the registration payload. Role is ignored by the
// customer endpoints, which always assign CUSTOMER.
type RegisterRequest struct {
	FullName string        `json:"fullName"`
	Mail     string        `json:"mail"`
	Password string        `json:"password"`
	Phone    *string       `json:"phone,omitempty"`
	ImageURL *string       `json:"imageUrl,omitempty"`
	Role     identity.Role `json:"role,omitempty"`
}

// AuthResponse is returned by login and register endpoints for both
// classes: a bearer token plus the authenticated profile.
type AuthResponse struct {
	Token string           `json:"token"`
	User  identity.Profile `json:"user"`
}

// RoomType enumerates room categories known to the booking API.
type RoomType string

const (
	RoomTypeSingle    RoomType = "SINGLE"
	RoomTypeDouble    RoomType = "DOUBLE"
	RoomTypeSuite     RoomType = "SUITE"
	RoomTypeApartment RoomType = "APT"
	RoomTypeHouse     RoomType = "HSE"
	RoomTypeStudio    RoomType = "STD"
	RoomTypeVilla     RoomType = "VLA"
)

// ViewType enumerates the view available from a room.
type ViewType string

const (
	ViewGarden   ViewType = "GARDEN"
	ViewSea      ViewType = "SEA"
	ViewCity     ViewType = "CITY"
	ViewMountain ViewType = "MOUNTAIN"
	ViewNone     ViewType = "NONE"
)

// RoomStatus enumerates operational room states.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
	RoomStatusCleaning    RoomStatus = "CLEANING"
)

// Capacity describes how many guests a room sleeps.
type Capacity struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Room mirrors the booking API's room resource.
type Room struct {
	ID               string     `json:"id"`
	RoomNumber       string     `json:"roomNumber"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Type             RoomType   `json:"type"`
	View             ViewType   `json:"view"`
	Status           RoomStatus `json:"status"`
	Capacity         Capacity   `json:"capacity"`
	SizeInSqMeters   float64    `json:"sizeInSqMeters"`
	Floor            int        `json:"floor"`
	BedConfiguration string     `json:"bedConfiguration"`
	Amenities        []string   `json:"amenities"`
	BasePrice        float64    `json:"basePrice"`
	WeekendPrice     float64    `json:"weekendPrice"`
	OnSale           bool       `json:"onSale"`
	SalePrice        *float64   `json:"salePrice,omitempty"`
	ImageURLs        []string   `json:"imageUrls"`
	ThumbnailURL     *string    `json:"thumbnailUrl"`
	IsPublished      bool       `json:"isPublished"`
	InternalNotes    *string    `json:"internalNotes,omitempty"`
}

// RoomCreateRequest is the admin payload for a new room.
type RoomCreateRequest struct {
	RoomNumber       string   `json:"roomNumber"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             RoomType `json:"type"`
	View             ViewType `json:"view"`
	Capacity         Capacity `json:"capacity"`
	SizeInSqMeters   *float64 `json:"sizeInSqMeters,omitempty"`
	Floor            *int     `json:"floor,omitempty"`
	BedConfiguration string   `json:"bedConfiguration"`
	Amenities        []string `json:"amenities"`
	BasePrice        float64  `json:"basePrice"`
	WeekendPrice     *float64 `json:"weekendPrice,omitempty"`
	OnSale           bool     `json:"onSale"`
	SalePrice        *float64 `json:"salePrice,omitempty"`
	IsPublished      bool     `json:"isPublished"`
	InternalNotes    *string  `json:"internalNotes,omitempty"`
}

// RoomUpdateRequest carries only the fields being changed.
type RoomUpdateRequest struct {
	Title            *string   `json:"title,omitempty"`
	Description      *string   `json:"description,omitempty"`
	Type             *RoomType `json:"type,omitempty"`
	View             *ViewType `json:"view,omitempty"`
	Capacity         *Capacity `json:"capacity,omitempty"`
	SizeInSqMeters   *float64  `json:"sizeInSqMeters,omitempty"`
	Floor            *int      `json:"floor,omitempty"`
	BedConfiguration *string   `json:"bedConfiguration,omitempty"`
	Amenities        []string  `json:"amenities,omitempty"`
	BasePrice        *float64  `json:"basePrice,omitempty"`
	WeekendPrice     *float64  `json:"weekendPrice,omitempty"`
	OnSale           *bool     `json:"onSale,omitempty"`
	SalePrice        *float64  `json:"salePrice,omitempty"`
	IsPublished      *bool     `json:"isPublished,omitempty"`
	InternalNotes    *string   `json:"internalNotes,omitempty"`
}

// BookingStatus enumerates reservation lifecycle states.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusCheckedIn  BookingStatus = "CHECKED_IN"
	BookingStatusCheckedOut BookingStatus = "CHECKED_OUT"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusNoShow     BookingStatus = "NO_SHOW"
)

// Booking mirrors the booking API's reservation resource. Dates are
// ISO 8601 date strings as served by the API.
type Booking struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customerId"`
	RoomID       string        `json:"roomId"`
	CheckInDate  string        `json:"checkInDate"`
	CheckOutDate string        `json:"checkOutDate"`
	NumAdults    int           `json:"numAdults"`
	NumChildren  int           `json:"numChildren"`
	Notes        *string       `json:"notes,omitempty"`
	Status       BookingStatus `json:"status"`
}

// BookingCreateRequest reserves a room for a customer.
type BookingCreateRequest struct {
	CustomerID   string  `json:"customerId"`
	RoomID       string  `json:"roomId"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	NumAdults    int     `json:"numAdults"`
	NumChildren  int     `json:"numChildren"`
	Notes        *string `json:"notes,omitempty"`
}

// AvailabilityQuery filters the available-rooms search.
type AvailabilityQuery struct {
	CheckInDate  string
	CheckOutDate string
	NumAdults    int
	NumChildren  int
}

// Customer mirrors the booking API's customer record.
type Customer struct {
	ID       string  `json:"id"`
	FullName string  `json:"fullName"`
	Mail     string  `json:"mail"`
	Phone    *string `json:"phone"`
	ImageURL *string `json:"imageUrl"`
	Online   bool    `json:"online"`
}

// CustomerUpdateRequest carries mutable customer fields.
type CustomerUpdateRequest struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// StaffUser mirrors the booking API's staff account record.
type StaffUser struct {
	ID       string        `json:"id"`
	FullName string        `json:"fullName"`
	Mail     string        `json:"mail"`
	Phone    *string       `json:"phone"`
	ImageURL *string       `json:"imageUrl"`
	Online   bool          `json:"online"`
	Role     identity.Role `json:"role"`
}

// StaffUserUpdateRequest carries mutable staff account fields.
type StaffUserUpdateRequest struct {
	FullName *string        `json:"fullName,omitempty"`
	Phone    *string        `json:"phone,omitempty"`
	ImageURL *string        `json:"imageUrl,omitempty"`
	Role     *identity.Role `json:"role,omitempty"`
}
