package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductRecordHasData(t *testing.T) {
	tests := []struct {
		name   string
		record ProductRecord
		want   bool
	}{
		{"named product", ProductRecord{Name: "boAt Rockerz 450", Price: 1499}, true},
		{"name only", ProductRecord{Name: "boAt Rockerz 450"}, true},
		{"price only", ProductRecord{Name: NameNotFound, Price: 499}, true},
		{"sentinel and no price", ProductRecord{Name: NameNotFound}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.HasData())
		})
	}
}

func TestValidateContributionAmount(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		contributed float64
		amount      float64
		wantErr     string
	}{
		{"first payment", 1000, 0, 100, ""},
		{"fills the goal exactly", 1000, 900, 100, ""},
		{"zero amount", 1000, 0, 0, "Contribution amount must be greater than zero"},
		{"negative amount", 1000, 0, -50, "Contribution amount must be greater than zero"},
		{"single payment equals price", 1000, 0, 1000, "Contribution amount must be less than the product price"},
		{"single payment exceeds price", 1000, 0, 1500, "Contribution amount must be less than the product price"},
		{"total would exceed price", 1000, 900, 200, "Total contributions cannot exceed product price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContributionAmount(tt.price, tt.contributed, tt.amount)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestContributionRecalculate(t *testing.T) {
	now := time.Now()
	c := Contribution{
		ProductPrice: 1000,
		History: []ContributionEntry{
			{Amount: 250, Date: now},
			{Amount: 150, Date: now},
		},
	}

	c.Recalculate()

	assert.Equal(t, 400.0, c.TotalAmount)
	assert.Equal(t, 600.0, c.RemainingAmount)
}

func TestContributionRecalculateClampsRemaining(t *testing.T) {
	c := Contribution{
		ProductPrice: 500,
		History: []ContributionEntry{
			{Amount: 300},
			{Amount: 300},
		},
	}

	c.Recalculate()

	assert.Equal(t, 600.0, c.TotalAmount)
	assert.Equal(t, 0.0, c.RemainingAmount)
}

func TestContributionRecalculateEmptyHistory(t *testing.T) {
	c := Contribution{ProductPrice: 750}

	c.Recalculate()

	assert.Equal(t, 0.0, c.TotalAmount)
	assert.Equal(t, 750.0, c.RemainingAmount)
}
