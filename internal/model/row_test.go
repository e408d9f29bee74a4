package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowHeadersSorted(t *testing.T) {
	r := Row{"zeta": 1, "alpha": 2, "mid": 3}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Headers())
}

func TestRowGet(t *testing.T) {
	r := Row{"Amount": 100.5, "Vendor": "Acme"}

	assert.Equal(t, 100.5, r.Get("Amount"))
	assert.Nil(t, r.Get("missing"))
	assert.Nil(t, r.Get(""))
}

func TestRowGetString(t *testing.T) {
	r := Row{
		"Vendor":  "  Acme Corp  ",
		"Amount":  1250.5,
		"Count":   3,
		"Flag":    true,
		"Nothing": nil,
	}

	assert.Equal(t, "Acme Corp", r.GetString("Vendor"))
	assert.Equal(t, "1250.5", r.GetString("Amount"))
	assert.Equal(t, "3", r.GetString("Count"))
	assert.Equal(t, "true", r.GetString("Flag"))
	assert.Equal(t, "", r.GetString("Nothing"))
	assert.Equal(t, "", r.GetString("missing"))
}

func TestRowHas(t *testing.T) {
	r := Row{"Vendor": "Acme", "Blank": "   "}

	assert.True(t, r.Has("Vendor"))
	assert.False(t, r.Has("Blank"))
	assert.False(t, r.Has("missing"))
}

func TestRowClone(t *testing.T) {
	r := Row{"Vendor": "Acme"}
	c := r.Clone()
	c["Vendor"] = "Changed"

	assert.Equal(t, "Acme", r.GetString("Vendor"))
	assert.Equal(t, "Changed", c.GetString("Vendor"))
}
