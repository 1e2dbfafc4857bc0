package envfile

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const templateHeader = `# LoRaWAN OTAA credentials, forwarded to the firmware as preprocessor
# definitions. Values are C array initialisers, least significant byte first.
# Variables already set in the environment take precedence over this file.
# Keep this file out of version control.

`

// escapedChars are escaped by godotenv inside double quotes. Parse does not
// unescape, so values containing them would not load back unchanged.
const escapedChars = "\\\n\r\"!$`"

// Template renders a starter env file for values. Values containing any of
// escapedChars are rejected.
func Template(values map[string]string) ([]byte, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.ContainsAny(values[k], escapedChars) {
			return nil, fmt.Errorf("value of %s contains characters that cannot be written unescaped (%q)", k, escapedChars)
		}
	}

	body, err := godotenv.Marshal(values)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	buf.WriteString(body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}
