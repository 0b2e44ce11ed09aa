// Package audit serves the mock audit data behind the dashboard and report
// views, together with filtering, sorting and summary helpers.
package audit

import (
	"fmt"
	"time"

	"github.com/waabox/auditdeck/internal/domain"
)

// NewAuditID is the id the report view uses for a freshly submitted audit
// that has not been given its own id.
const NewAuditID = "audit-new"

// Catalog is an in-memory domain.AuditRepository over static mock data.
type Catalog struct {
	audits []domain.Audit
}

// Ensure Catalog implements AuditRepository.
var _ domain.AuditRepository = (*Catalog)(nil)

// NewCatalog creates a catalog with the given audits.
func NewCatalog(audits []domain.Audit) *Catalog {
	return &Catalog{audits: audits}
}

// NewMockCatalog creates a catalog with the built-in mock audits.
func NewMockCatalog() *Catalog {
	return NewCatalog(MockAudits())
}

// ListAudits returns a copy of every audit in the catalog.
func (c *Catalog) ListAudits() ([]domain.Audit, error) {
	out := make([]domain.Audit, len(c.audits))
	copy(out, c.audits)
	return out, nil
}

// GetAudit returns the audit with the given id. NewAuditID resolves to the
// report template. Unknown ids return domain.ErrNotFound.
func (c *Catalog) GetAudit(id string) (domain.Audit, error) {
	for _, a := range c.audits {
		if a.ID == id {
			return a, nil
		}
	}
	if id == NewAuditID {
		return reportTemplate(NewAuditID, "DeFi Lending Protocol", mockDate(2024, 1, 15)), nil
	}
	return domain.Audit{}, fmt.Errorf("audit %q: %w", id, domain.ErrNotFound)
}

func mockDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MockAudits returns the dashboard mock audits.
func MockAudits() []domain.Audit {
	lending := reportTemplate("audit-001", "DeFi Lending Protocol", mockDate(2024, 1, 15))

	staking := domain.Audit{
		ID:                "audit-003",
		ProjectName:       "Token Staking Contract",
		Description:       "Stake tokens for epoch based rewards.",
		Status:            domain.AuditStatusCompleted,
		Score:             78,
		Date:              mockDate(2024, 1, 12),
		CodeToIntentMatch: 81,
		Vulnerabilities: []domain.Vulnerability{
			{ID: 1, Severity: domain.SeverityHigh, Title: "Reward Calculation Overflow", Line: 64,
				Description:    "Reward accumulation multiplies before dividing and can overflow for long staking periods.",
				Recommendation: "Use checked arithmetic and divide before multiplying where precision allows."},
			{ID: 2, Severity: domain.SeverityMedium, Title: "Unbounded Staker Iteration", Line: 102,
				Description:    "distribute_rewards iterates every staker and can exceed the gas limit.",
				Recommendation: "Switch to a pull based reward model."},
			{ID: 3, Severity: domain.SeverityMedium, Title: "Missing Access Control", Line: 31,
				Description:    "set_reward_rate can be called by any account.",
				Recommendation: "Restrict the method to the contract owner."},
			{ID: 4, Severity: domain.SeverityLow, Title: "Missing Event Emission", Line: 88,
				Description:    "Stake and unstake operations do not emit events.",
				Recommendation: "Emit events for stake, unstake and claim."},
			{ID: 5, Severity: domain.SeverityLow, Title: "Magic Numbers", Line: 12,
				Description:    "Epoch length is hard coded in several places.",
				Recommendation: "Extract the value into a named constant."},
		},
		GasOptimizations: []domain.GasOptimization{
			{ID: 1, Title: "Cache Storage Reads", Description: "Read total_staked once per call.", CurrentGas: 18000, OptimizedGas: 14000},
		},
	}

	stakingCert := domain.NewCertificate(staking.ID, staking.Date)
	staking.Certificate = &stakingCert

	nft := domain.Audit{
		ID:          "audit-002",
		ProjectName: "NFT Marketplace Contract",
		Description: "List, buy and bid on NFTs with royalties.",
		Status:      domain.AuditStatusProcessing,
		Date:        mockDate(2024, 1, 14),
	}

	return []domain.Audit{lending, nft, staking}
}

// reportTemplate is the full mock report shown for the lending protocol and
// for every newly submitted audit.
func reportTemplate(id, name string, date time.Time) domain.Audit {
	cert := domain.NewCertificate(id, date)
	return domain.Audit{
		ID:                id,
		ProjectName:       name,
		Description:       "Deposit and withdraw NEAR with interest accrual.",
		Status:            domain.AuditStatusCompleted,
		Score:             92,
		Date:              date,
		CodeToIntentMatch: 95,
		Vulnerabilities: []domain.Vulnerability{
			{ID: 1, Severity: domain.SeverityHigh, Title: "Reentrancy Vulnerability", Line: 45,
				Description:    "The withdraw function is susceptible to reentrancy attacks. The external call should be made after updating the internal state.",
				Recommendation: "Use the checks-effects-interactions pattern or implement a reentrancy guard."},
			{ID: 2, Severity: domain.SeverityMedium, Title: "Unchecked Return Value", Line: 78,
				Description:    "The transfer function return value is not checked, which could lead to silent failures.",
				Recommendation: "Always check return values of external calls and handle failures appropriately."},
			{ID: 3, Severity: domain.SeverityLow, Title: "Missing Event Emission", Line: 120,
				Description:    "Important state changes should emit events for transparency and monitoring.",
				Recommendation: "Add event emissions for critical operations like deposits and withdrawals."},
		},
		GasOptimizations: []domain.GasOptimization{
			{ID: 1, Title: "Loop Optimization", Description: "The loop in calculateInterest can be optimized to reduce gas consumption.", CurrentGas: 45000, OptimizedGas: 32000},
			{ID: 2, Title: "Storage Optimization", Description: "Pack struct variables to reduce storage slots.", CurrentGas: 20000, OptimizedGas: 15000},
		},
		SourceCode:  lendingContractSource,
		Certificate: &cert,
	}
}

const lendingContractSource = `use near_sdk::borsh::{self, BorshDeserialize, BorshSerialize};
use near_sdk::{env, near_bindgen, AccountId, Balance, Promise};

#[near_bindgen]
#[derive(BorshDeserialize, BorshSerialize)]
pub struct LendingContract {
    pub balances: std::collections::HashMap<AccountId, Balance>,
    pub total_supply: Balance,
}

#[near_bindgen]
impl LendingContract {
    pub fn deposit(&mut self) {
        let account_id = env::predecessor_account_id();
        let amount = env::attached_deposit();

        let balance = self.balances.get(&account_id).unwrap_or(&0);
        self.balances.insert(account_id, balance + amount);
        self.total_supply += amount;
    }

    pub fn withdraw(&mut self, amount: Balance) {
        let account_id = env::predecessor_account_id();
        let balance = self.balances.get(&account_id).unwrap_or(&0);

        assert!(balance >= &amount, "Insufficient balance");

        self.balances.insert(account_id.clone(), balance - amount);
        self.total_supply -= amount;

        Promise::new(account_id).transfer(amount);
    }
}`
