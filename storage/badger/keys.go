package badger

import "fmt"

// Key prefixes for different data types
const (
	partyDetailPrefix = "pardet"
)

// makePartyDetailKey generates a key for a party detail record by entity key.
func makePartyDetailKey(entityKey string) []byte {
	return []byte(fmt.Sprintf("%s:%s", partyDetailPrefix, entityKey))
}
