package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// ID prefixes for persisted entities.
const (
	PrefixQuote    = "quote"
	PrefixClient   = "client"
	PrefixTemplate = "tmpl"
	PrefixNote     = "note"
	PrefixAPIKey   = "key"
	PrefixTeam     = "team"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex quote_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateQuoteNumber returns a short human-readable quote number such as
// QF-X4BQ2A. Uniqueness per user is enforced by the quotes table.
func GenerateQuoteNumber() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return "QF-" + GenerateUUID()[:6]
	}
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, "_", "")
	if len(id) > 6 {
		id = id[:6]
	}
	return "QF-" + strings.ToUpper(id)
}

// GenerateShareToken returns the opaque public identifier minted when a quote
// is sent. Long enough to be unguessable, short enough for a WhatsApp message.
func GenerateShareToken() string {
	return strings.ToLower(GenerateUUID())
}
