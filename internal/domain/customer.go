package domain

import "time"

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LicenseNo string    `json:"license_no"`
	CreatedOn time.Time `json:"created_on"`
}
