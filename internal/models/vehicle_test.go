package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleDisplayName(t *testing.T) {
	v := &Vehicle{Make: "Honda", Model: "Civic", Year: 2019}
	assert.Equal(t, "2019 Honda Civic", v.DisplayName())

	nickname := "Daily Driver"
	v.Nickname = &nickname
	assert.Equal(t, "Daily Driver", v.DisplayName())

	empty := ""
	v.Nickname = &empty
	assert.Equal(t, "2019 Honda Civic", v.DisplayName())
}
