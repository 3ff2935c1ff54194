package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"openconfig-system", "Openconfig-System"},
		{"gnmi_openconfig-system", "Gnmi_Openconfig-System"},
		{"Model - openconfig_interfaces", "Model - Openconfig_Interfaces"},
		{"OPENCONFIG_BGP", "Openconfig_Bgp"},
		{"ietf2interfaces", "Ietf2Interfaces"},
		{"__lead", "__Lead"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.input))
		})
	}
}
