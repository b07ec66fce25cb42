package holdings

import (
	"math/big"

	"github.com/google/uuid"

	"github.com/inorbyt/chain-sync/internal/store"
	"github.com/inorbyt/chain-sync/internal/store/schema"
	"github.com/inorbyt/chain-sync/internal/types"
)

// purchase adds amount to the holding. average_price is recomputed as
// total_invested / balance with truncating division; a new holding starts
// at the trade price.
func purchase(walletID uuid.UUID, amount string, price *string, totalValue string) store.HoldingMutator {
	return func(current *schema.TokenHolding) (store.HoldingChange, error) {
		if current == nil {
			return store.HoldingChange{
				Action: store.HoldingActionCreate,
				Holding: &schema.TokenHolding{
					WalletID:      walletID,
					Balance:       amount,
					AveragePrice:  types.NumericOrZero(price).String(),
					TotalInvested: types.NumericOrZero(&totalValue).String(),
				},
			}, nil
		}

		balance, err := types.AddNumeric(current.Balance, amount)
		if err != nil {
			return store.HoldingChange{}, err
		}
		invested, err := types.AddNumeric(current.TotalInvested, types.NumericOrZero(&totalValue).String())
		if err != nil {
			return store.HoldingChange{}, err
		}
		average, err := types.DivNumeric(invested, balance)
		if err != nil {
			return store.HoldingChange{}, err
		}

		return store.HoldingChange{
			Action: store.HoldingActionUpdate,
			Holding: &schema.TokenHolding{
				Balance:       balance,
				AveragePrice:  average,
				TotalInvested: invested,
			},
		}, nil
	}
}

// decrease subtracts amount from the holding and deletes it once the balance
// reaches zero or below. Overselling is not rejected. No holding is a no-op.
func decrease(amount string) store.HoldingMutator {
	return func(current *schema.TokenHolding) (store.HoldingChange, error) {
		if current == nil {
			return store.HoldingChange{Action: store.HoldingActionNone}, nil
		}

		balance, err := types.SubNumeric(current.Balance, amount)
		if err != nil {
			return store.HoldingChange{}, err
		}
		if sign(balance) <= 0 {
			return store.HoldingChange{Action: store.HoldingActionDelete}, nil
		}

		return store.HoldingChange{
			Action: store.HoldingActionUpdate,
			Holding: &schema.TokenHolding{
				Balance:       balance,
				AveragePrice:  current.AveragePrice,
				TotalInvested: current.TotalInvested,
			},
		}, nil
	}
}

// receive credits value to the holding, creating it on the receiving wallet
// with no cost basis
func receive(walletID uuid.UUID, value string) store.HoldingMutator {
	return func(current *schema.TokenHolding) (store.HoldingChange, error) {
		if current == nil {
			return store.HoldingChange{
				Action: store.HoldingActionCreate,
				Holding: &schema.TokenHolding{
					WalletID:      walletID,
					Balance:       value,
					AveragePrice:  "0",
					TotalInvested: "0",
				},
			}, nil
		}

		balance, err := types.AddNumeric(current.Balance, value)
		if err != nil {
			return store.HoldingChange{}, err
		}

		return store.HoldingChange{
			Action: store.HoldingActionUpdate,
			Holding: &schema.TokenHolding{
				Balance:       balance,
				AveragePrice:  current.AveragePrice,
				TotalInvested: current.TotalInvested,
			},
		}, nil
	}
}

func sign(s string) int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return 0
	}
	return v.Sign()
}
