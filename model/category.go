// SPDX-FileCopyrightText: 2021 Alvar Penning
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the flat, by-value domain records — Folder, Entry,
// and the Catalog that owns them — that the decrypted JSON is assembled
// into. None of these types carry any cryptographic behavior; they are
// populated once, by DomainBuilder-style constructor functions, and never
// mutated afterwards.
package model

import "github.com/kindahl/opvault/errs"

// Category is the closed enumeration of entry kinds carried by a band
// file's three-digit "category" field.
type Category uint16

const (
	CategoryLogin                 Category = 1
	CategoryCreditCard            Category = 2
	CategorySecureNote            Category = 3
	CategoryIdentity              Category = 4
	CategoryPassword              Category = 5
	CategoryTombstone             Category = 99
	CategorySoftwareLicense       Category = 100
	CategoryBankAccount           Category = 101
	CategoryDatabase              Category = 102
	CategoryDriverLicense         Category = 103
	CategoryOutdoorLicense        Category = 104
	CategoryMembership            Category = 105
	CategoryPassport              Category = 106
	CategoryRewards               Category = 107
	CategorySocialSecurityNumber  Category = 108
	CategoryRouter                Category = 109
	CategoryServer                Category = 110
	CategoryEmail                 Category = 111
)

var categoryCodes = map[string]Category{
	"001": CategoryLogin,
	"002": CategoryCreditCard,
	"003": CategorySecureNote,
	"004": CategoryIdentity,
	"005": CategoryPassword,
	"099": CategoryTombstone,
	"100": CategorySoftwareLicense,
	"101": CategoryBankAccount,
	"102": CategoryDatabase,
	"103": CategoryDriverLicense,
	"104": CategoryOutdoorLicense,
	"105": CategoryMembership,
	"106": CategoryPassport,
	"107": CategoryRewards,
	"108": CategorySocialSecurityNumber,
	"109": CategoryRouter,
	"110": CategoryServer,
	"111": CategoryEmail,
}

var categoryNames = map[Category]string{
	CategoryLogin:                "Login",
	CategoryCreditCard:           "CreditCard",
	CategorySecureNote:           "SecureNote",
	CategoryIdentity:             "Identity",
	CategoryPassword:             "Password",
	CategoryTombstone:            "Tombstone",
	CategorySoftwareLicense:      "SoftwareLicense",
	CategoryBankAccount:          "BankAccount",
	CategoryDatabase:             "Database",
	CategoryDriverLicense:        "DriverLicense",
	CategoryOutdoorLicense:       "OutdoorLicense",
	CategoryMembership:           "Membership",
	CategoryPassport:             "Passport",
	CategoryRewards:              "Rewards",
	CategorySocialSecurityNumber: "SocialSecurityNumber",
	CategoryRouter:               "Router",
	CategoryServer:               "Server",
	CategoryEmail:                "Email",
}

// ParseCategory maps a band file's three-digit category code to a Category.
// The mapping is total over the documented enumeration; any other code is
// rejected.
func ParseCategory(code string) (Category, error) {
	c, ok := categoryCodes[code]
	if !ok {
		return 0, errs.Format("unrecognized entry category %q", code)
	}
	return c, nil
}

// String renders a Category's name, or a placeholder for an invalid value.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}
