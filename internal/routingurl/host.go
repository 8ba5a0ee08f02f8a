package routingurl

import (
	"errors"
	"strconv"
	"strings"
)

var errInvalidIPv4 = errors.New("invalid IPv4 address")

// canonicalHost lowercases a domain and rewrites numeric hosts into dotted
// quad form, so 127.1 and 0x7f.0.0.1 both become 127.0.0.1. A host whose
// last label is numeric but does not form a valid address is an error.
func canonicalHost(host string) (string, error) {
	if strings.ContainsRune(host, ':') {
		return strings.ToLower(host), nil
	}

	host = strings.ToLower(host)

	if !endsInNumber(host) {
		return host, nil
	}

	return parseIPv4(host)
}

func endsInNumber(host string) bool {
	parts := strings.Split(host, ".")
	if parts[len(parts)-1] == "" {
		if len(parts) == 1 {
			return false
		}

		parts = parts[:len(parts)-1]
	}

	last := parts[len(parts)-1]
	if last != "" && strings.Trim(last, "0123456789") == "" {
		return true
	}

	_, err := parseIPv4Number(last)

	return err == nil
}

func parseIPv4(host string) (string, error) {
	parts := strings.Split(host, ".")
	if parts[len(parts)-1] == "" && len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}

	if len(parts) > 4 {
		return "", errInvalidIPv4
	}

	numbers := make([]uint64, 0, len(parts))

	for _, part := range parts {
		n, err := parseIPv4Number(part)
		if err != nil {
			return "", err
		}

		numbers = append(numbers, n)
	}

	for _, n := range numbers[:len(numbers)-1] {
		if n > 255 {
			return "", errInvalidIPv4
		}
	}

	last := numbers[len(numbers)-1]
	if last >= uint64(1)<<(8*(5-len(numbers))) {
		return "", errInvalidIPv4
	}

	addr := last
	for i, n := range numbers[:len(numbers)-1] {
		addr += n << (8 * (3 - i))
	}

	return strconv.FormatUint(addr>>24, 10) + "." +
		strconv.FormatUint(addr>>16&0xff, 10) + "." +
		strconv.FormatUint(addr>>8&0xff, 10) + "." +
		strconv.FormatUint(addr&0xff, 10), nil
}

// parseIPv4Number accepts decimal, 0x hex and leading-zero octal parts.
func parseIPv4Number(part string) (uint64, error) {
	if part == "" {
		return 0, errInvalidIPv4
	}

	base := 10

	switch {
	case strings.HasPrefix(part, "0x"):
		part, base = part[2:], 16
	case len(part) > 1 && part[0] == '0':
		part, base = part[1:], 8
	}

	if part == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(part, base, 32)
	if err != nil {
		return 0, errInvalidIPv4
	}

	return n, nil
}
