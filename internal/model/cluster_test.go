package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorClusterValidate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		cluster VendorCluster
		wantErr bool
	}{
		{
			name: "valid cluster",
			cluster: VendorCluster{
				MasterName:       "Acme Industrial",
				Variants:         []string{"ACME Corp", "Acme Ind."},
				ContractStatus:   ContractStatusActive,
				TotalSpend:       125000,
				TransactionCount: 14,
			},
			wantErr: false,
		},
		{
			name: "no variants is allowed",
			cluster: VendorCluster{
				MasterName: "Solo Vendor",
			},
			wantErr: false,
		},
		{
			name: "empty master name",
			cluster: VendorCluster{
				Variants: []string{"Ghost Corp"},
			},
			wantErr: true,
			errMsg:  "empty master name",
		},
		{
			name: "whitespace master name",
			cluster: VendorCluster{
				MasterName: "   ",
			},
			wantErr: true,
			errMsg:  "empty master name",
		},
		{
			name: "negative transaction count",
			cluster: VendorCluster{
				MasterName:       "Acme",
				TransactionCount: -1,
			},
			wantErr: true,
			errMsg:  "negative transaction count",
		},
		{
			name: "blank variant",
			cluster: VendorCluster{
				MasterName: "Acme",
				Variants:   []string{"ACME Corp", " "},
			},
			wantErr: true,
			errMsg:  "empty variant at index 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cluster.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVendorClusterValidateNil(t *testing.T) {
	var c *VendorCluster
	assert.Error(t, c.Validate())
}
