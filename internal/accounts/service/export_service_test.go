package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

func TestSerializeContacts(t *testing.T) {
	contacts := []entity.Contact{
		{Name: "John", Email: "john@mail.com", Phone: "9000"},
		{Name: "Meena", Email: "meena@mail.com"},
	}
	assert.Equal(t, "John/john@mail.com/9000; Meena/meena@mail.com/", serializeContacts(contacts))
	assert.Empty(t, serializeContacts(nil))
}

func TestSerializeContactsRoundTrip(t *testing.T) {
	contacts := []entity.Contact{
		{Name: "John", Email: "john@mail.com", Phone: "9000"},
		{Name: "Meena", Email: "meena@mail.com"},
	}

	parsed, err := parseContacts(serializeContacts(contacts))
	assert.NoError(t, err)
	assert.Len(t, parsed, 2)
	assert.Equal(t, "John", parsed[0].Name)
	assert.Equal(t, "9000", parsed[0].Phone)
	assert.Equal(t, "Meena", parsed[1].Name)
	assert.Empty(t, parsed[1].Phone)
}

func TestSerializeAccount(t *testing.T) {
	probability := 60
	account := &entity.Account{
		Name:            "Acme",
		Code:            "ACM",
		Probability:     &probability,
		AccountPartner:  "Jane",
		DeliveryPartner: "Raj",
		Department:      &entity.Department{LookupItem: entity.LookupItem{Name: "Engineering"}},
		BillingAddress: &entity.Address{
			AddressLine1: "1 Main St",
			City:         "Pune",
			CountryCode:  "IN",
		},
		Contacts: []entity.Contact{{Name: "John", Email: "john@mail.com", Phone: "9000"}},
	}

	values := serializeAccount(account)
	assert.Len(t, values, len(exportColumns))
	assert.Equal(t, "Acme", values[0])
	assert.Equal(t, "ACM", values[1])
	assert.Equal(t, "60", values[2])
	assert.Equal(t, "Jane", values[3])
	assert.Equal(t, "Raj", values[4])
	assert.Equal(t, "Engineering", values[5])
	assert.Empty(t, values[6], "unset lookups serialize as blank")
	assert.Equal(t, "1 Main St", values[10])
	assert.Equal(t, "Pune", values[12])
	assert.Equal(t, "IN", values[15])
	assert.Equal(t, "John/john@mail.com/9000", values[16])
}

func TestSerializeAccountBlankProbability(t *testing.T) {
	account := &entity.Account{Name: "Acme", Code: "ACM"}
	values := serializeAccount(account)
	assert.Empty(t, values[2], "nil probability must not serialize as 0")
}
