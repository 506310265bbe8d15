package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeOffsetToken creates an opaque page token for an offset within the
// listing of one company.
func EncodeOffsetToken(companyID string, offset int) string {
	return EncodeMultiFieldToken(companyID, strconv.Itoa(offset))
}

// DecodeOffsetToken parses a token produced by EncodeOffsetToken. Tokens issued
// for another company are rejected.
func DecodeOffsetToken(token, companyID string) (int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != companyID {
		return 0, fmt.Errorf("pagination token belongs to another company")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset parse)")
	}
	return offset, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decodedBytes), "|"), nil
}
