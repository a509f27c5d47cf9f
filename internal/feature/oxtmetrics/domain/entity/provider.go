package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderStatus is the lifecycle state of an Orchid bandwidth provider.
type ProviderStatus string

const (
	ProviderActive   ProviderStatus = "active"
	ProviderInactive ProviderStatus = "inactive"
)

// ParseProviderStatus accepts the canonical tag or its upper-case name.
func ParseProviderStatus(s string) (ProviderStatus, error) {
	st := ProviderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case ProviderActive, ProviderInactive:
		return st, nil
	}
	return "", fmt.Errorf("unknown provider status %q", s)
}

// Provider is a staking node on the Orchid network.
type Provider struct {
	// ID is the unique identifier for the provider.
	ID uuid.UUID

	// Address is the on-chain address; unique across providers.
	Address string

	// Status is the provider's current state.
	Status ProviderStatus

	// LastSeen is the last time the provider was observed.
	LastSeen time.Time

	// StakeAmount is the OXT staked by the provider.
	StakeAmount float64
}
