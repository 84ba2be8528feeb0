package data

// ReceiptStatus is the terminal (or not yet terminal) state of a submission
type ReceiptStatus string

const (
	StatusConfirmed ReceiptStatus = "confirmed"
	StatusReverted  ReceiptStatus = "reverted"
	StatusUnknown   ReceiptStatus = "unknown"
)

// Terminal - true once the status left unknown
func (s ReceiptStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusReverted
}

// TransactionSubmission is what the network hands back when it accepts a call
type TransactionSubmission struct {
	TransactionHash string `json:"transaction_hash"`
}

// ConfirmationReceipt is the result of polling the network for a submission
type ConfirmationReceipt struct {
	TransactionHash string        `json:"transaction_hash"`
	Status          ReceiptStatus `json:"status"`
	BlockNumber     uint64        `json:"block_number,omitempty"`
	GasUsed         uint64        `json:"gas_used,omitempty"`
}

// ElasticResult is the indexer answer for a transactions/_search query
type ElasticResult struct {
	Hits struct {
		Hits []*ElasticEntry `json:"hits"`
	} `json:"hits"`
}

type ElasticEntry struct {
	ID     string `json:"_id"`
	Source struct {
		Status   string `json:"status"`
		Data     []byte `json:"data"`
		Receiver string `json:"receiver"`
		Value    string `json:"value"`
		GasUsed  uint64 `json:"gasUsed"`
	} `json:"_source"`
}
