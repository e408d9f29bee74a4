package model

import (
	"fmt"
	"strings"
)

// ClusterContractStatus describes whether a clustered vendor has a contract
// on file, as reported by the upstream deduplication service.
type ClusterContractStatus string

// Contract status values carried on vendor clusters.
const (
	ContractStatusActive  ClusterContractStatus = "ACTIVE"
	ContractStatusExpired ClusterContractStatus = "EXPIRED"
	ContractStatusNone    ClusterContractStatus = "NONE"
)

// VendorCluster is a pre-computed vendor identity produced by the external
// vendor-deduplication collaborator. The engine consumes clusters read-only;
// it never merges or renames vendors itself.
type VendorCluster struct {
	MasterName       string                `json:"master_name"`
	Variants         []string              `json:"variants"`
	ContractStatus   ClusterContractStatus `json:"contract_status"`
	TotalSpend       float64               `json:"total_spend"`
	TransactionCount int                   `json:"transaction_count"`
}

// Validate checks the structural contract a cluster must satisfy. A failure
// here is an upstream contract violation, not messy source data, so unlike
// everything else in the engine it surfaces as an error.
func (c *VendorCluster) Validate() error {
	if c == nil {
		return fmt.Errorf("cluster is nil")
	}
	if strings.TrimSpace(c.MasterName) == "" {
		return fmt.Errorf("cluster has empty master name")
	}
	if c.TransactionCount < 0 {
		return fmt.Errorf("cluster %q has negative transaction count %d", c.MasterName, c.TransactionCount)
	}
	for i, v := range c.Variants {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("cluster %q has empty variant at index %d", c.MasterName, i)
		}
	}
	return nil
}
