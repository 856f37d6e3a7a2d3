package models

import (
	"gorm.io/gorm"
)

type Organisation struct {
	gorm.Model
	Name      string  `json:"name" gorm:"unique"`
	AddressID uint    `json:"address_id"`
	Address   Address `json:"address,omitempty" gorm:"foreignKey:AddressID"`
}

type Address struct {
	gorm.Model
	HouseNo  string `json:"house_no"`
	Area     string `json:"area"`
	Landmark string `json:"landmark"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	PinCode  string `json:"pin_code"`
}
