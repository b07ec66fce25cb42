package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Wallet defaults
	DEFAULT_WALLET_CHAIN_ID     = 8453
	DEFAULT_WALLET_NETWORK_NAME = "base"

	// Recovery scans at most this many unprocessed events per run
	RECOVERY_BATCH_SIZE = 100

	// Floor price is the mean of this many most recent priced trades
	FLOOR_PRICE_WINDOW = 10
)
