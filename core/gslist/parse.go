package gslist

import (
	"bufio"
	"bytes"
	"errors"
	"maps"
	"strconv"
	"strings"
	"time"

	"serverlister/core/reconcile"
	"serverlister/core/utils"
)

// errMalformed is returned when output had server lines but none parsed.
var errMalformed = errors.New("malformed gslist output")

// Entry is one parsed output line.
type Entry struct {
	Address string
	Values  map[string]string
}

// ParseOutput parses gslist text output into de-duplicated entries in first
// seen order. When an address repeats, the later key/value block replaces
// the earlier one if it is not empty.
func ParseOutput(data []byte) ([]Entry, error) {
	var (
		entries    []Entry
		index      = make(map[string]int)
		candidates int
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		candidates++

		addr, rest, ok := splitLine(line)
		if !ok {
			continue
		}
		values := ParseKeyValues(rest)

		if i, exists := index[addr]; exists {
			if len(values) > 0 {
				entries[i].Values = values
			}
			continue
		}
		index[addr] = len(entries)
		entries = append(entries, Entry{Address: addr, Values: values})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if candidates > 0 && len(entries) == 0 {
		return nil, errMalformed
	}
	return entries, nil
}

// splitLine extracts the normalized address and the remainder of a line.
// Both "ip:port" and "ip port" forms are accepted.
func splitLine(line string) (addr, rest string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", false
	}
	first := fields[0]
	restStart := len(first)
	if !strings.Contains(first, ":") && len(fields) > 1 {
		if _, err := strconv.Atoi(fields[1]); err == nil {
			first = first + ":" + fields[1]
			restStart = len(fields[0]) + strings.Index(line[len(fields[0]):], fields[1]) + len(fields[1])
		}
	}
	norm, err := reconcile.NormalizeAddress(first)
	if err != nil {
		return "", "", false
	}
	return norm, strings.TrimSpace(line[restStart:]), true
}

// ParseKeyValues parses a GameSpy "\key\value\key\value" block. Keys are
// lower-cased. A trailing key without a value is dropped.
func ParseKeyValues(s string) map[string]string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `\`) {
		return nil
	}
	parts := strings.Split(s[1:], `\`)
	out := make(map[string]string, len(parts)/2)
	for i := 0; i+1 < len(parts); i += 2 {
		key := strings.ToLower(strings.TrimSpace(parts[i]))
		if key == "" {
			continue
		}
		out[key] = parts[i+1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StatusFromValues maps well known GameSpy keys onto a ServerStatus.
func StatusFromValues(values map[string]string, probedAt time.Time) *reconcile.ServerStatus {
	status := &reconcile.ServerStatus{
		Name:       values["hostname"],
		Map:        values["mapname"],
		GameType:   values["gametype"],
		NumPlayers: utils.ToInt(values["numplayers"]),
		MaxPlayers: utils.ToInt(values["maxplayers"]),
		Ping:       utils.ToInt(values["ping"]),
		Password:   utils.ToBool(values["password"]),
		ProbedAt:   probedAt,
	}
	if len(values) > 0 {
		status.Raw = maps.Clone(values)
	}
	return status
}
