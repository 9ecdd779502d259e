package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a gym member.
type Client struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MembershipNumber    int                `bson:"membershipNumber" json:"membershipNumber"` // Unique, 10000-99999
	FirstName           string             `bson:"firstName" json:"firstName"`
	MiddleName          string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName            string             `bson:"lastName" json:"lastName"`
	Phone               string             `bson:"phone" json:"phone"` // 10 digits, no separators
	Email               string             `bson:"email" json:"email"`
	DOB                 time.Time          `bson:"dob" json:"dob"`
	PostalCode          string             `bson:"postalCode" json:"postalCode"`
	HealthCondition     string             `bson:"healthCondition" json:"healthCondition"`
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	MembershipStartDate time.Time          `bson:"membershipStartDate" json:"membershipStartDate"`
	MembershipEndDate   time.Time          `bson:"membershipEndDate" json:"membershipEndDate"`
	MembershipFee       float64            `bson:"membershipFee" json:"membershipFee"`
	FeePaid             bool               `bson:"feePaid" json:"feePaid"`
	MembershipTypeID    primitive.ObjectID `bson:"membershipTypeId" json:"membershipTypeId"`
	Photo               *StoredFile        `bson:"photo,omitempty" json:"photo,omitempty"`

	Audit     `bson:",inline"`
	Versioned `bson:",inline"`
}

// FullName is "First M. Last".
func (c *Client) FullName() string {
	return personName(c.FirstName, c.MiddleName, c.LastName)
}

// Summary appends the membership type, e.g. "Fred F. Flintstone - Gold Mem.".
func (c *Client) Summary(membershipType string) string {
	if membershipType == "" {
		return c.FullName()
	}
	return c.FullName() + " - " + membershipType + " Mem."
}

// FormalName is "Last, First M.".
func (c *Client) FormalName() string {
	return formalName(c.FirstName, c.MiddleName, c.LastName)
}

// FullFormalName keeps the whole middle name.
func (c *Client) FullFormalName() string {
	name := c.LastName + ", " + c.FirstName
	if c.MiddleName != "" {
		name += " " + c.MiddleName
	}
	return name
}

// Age in whole years on the given day.
func (c *Client) Age(today time.Time) int {
	return yearsBetween(c.DOB, today)
}

// PhoneFormatted renders the phone as (905) 555-1234.
func (c *Client) PhoneFormatted() string {
	return FormatPhone(c.Phone)
}

// MembershipStatus is "Expired" or "Exp. in N Months, D Days".
func (c *Client) MembershipStatus(today time.Time) string {
	today = CalendarDay(today)
	end := CalendarDay(c.MembershipEndDate)
	if !end.After(today) {
		return "Expired"
	}
	totalMonths := (end.Year()-today.Year())*12 + int(end.Month()) - int(today.Month())
	temp := AddMonths(today, totalMonths)
	if temp.After(end) {
		totalMonths--
		temp = AddMonths(today, totalMonths)
	}
	days := int(end.Sub(temp).Hours() / 24)
	return fmt.Sprintf("Exp. in %d Months, %d Days", totalMonths, days)
}

// AddMonths adds n months to t, clamping the day to the last day of the
// target month instead of overflowing into the next one.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// FormatPhone renders a 10-digit phone number; anything else is returned as-is.
func FormatPhone(phone string) string {
	if len(phone) != 10 {
		return phone
	}
	return "(" + phone[0:3] + ") " + phone[3:6] + "-" + phone[6:]
}

func personName(first, middle, last string) string {
	if middle == "" {
		return first + " " + last
	}
	return first + " " + strings.ToUpper(middle[:1]) + ". " + last
}

func formalName(first, middle, last string) string {
	name := last + ", " + first
	if middle != "" {
		name += " " + strings.ToUpper(middle[:1]) + "."
	}
	return name
}

func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}
