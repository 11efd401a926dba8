package models

// Customer is a person or business that requests quotes and places orders.
type Customer struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Business *string `gorm:"type:varchar(255)" json:"business"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Email    string  `gorm:"type:varchar(255);not null" json:"email"`
	Phone    *string `gorm:"type:varchar(50)" json:"phone"`
	Address1 *string `gorm:"type:varchar(255)" json:"address1"`
	Address2 *string `gorm:"type:varchar(255)" json:"address2"`
	City     *string `gorm:"type:varchar(100)" json:"city"`
	County   *string `gorm:"type:varchar(100)" json:"county"`
	Postcode *string `gorm:"type:varchar(20)" json:"postcode"`
	Notes    *string `gorm:"type:text" json:"notes"`
}

// BusinessName returns the trading name used in quote numbers.
func (c *Customer) BusinessName() string {
	if c.Business != nil && *c.Business != "" {
		return *c.Business
	}
	return ""
}
