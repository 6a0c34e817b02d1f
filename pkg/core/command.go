package core

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// CommandProperties carries the optional key=value parameters of a legacy
// stdout command (e.g. file/line for annotations). Ordering is not
// significant on the wire; encoding sorts keys for deterministic bytes.
type CommandProperties map[string]string

// Command is one workflow command in the legacy stdout encoding:
//
//	::name key=value,key=value::message
//
// Commands are transient: built, written, discarded.
type Command struct {
	Name       string
	Properties CommandProperties
	Message    string
}

// escapeData escapes a command message body. Percent must go first so the
// escape sequences introduced for CR/LF are not re-escaped.
var escapeData = strings.NewReplacer(
	"%", "%25",
	"\r", "%0D",
	"\n", "%0A",
)

// escapeProperty escapes a property value; the property segment additionally
// reserves ':' (segment terminator) and ',' (pair separator).
var escapeProperty = strings.NewReplacer(
	"%", "%25",
	"\r", "%0D",
	"\n", "%0A",
	":", "%3A",
	",", "%2C",
)

// String renders the command as a single line without the trailing newline.
// An empty property set elides the property segment entirely, including the
// space that would separate it from the name.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(c.Name)
	if len(c.Properties) > 0 {
		keys := make([]string, 0, len(c.Properties))
		for k := range c.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte(' ')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(escapeProperty.Replace(c.Properties[k]))
		}
	}
	b.WriteString("::")
	b.WriteString(escapeData.Replace(c.Message))
	return b.String()
}

// CommandValue canonicalizes an arbitrary value into the single string form
// used on both transports: nil becomes the empty string, strings pass
// through untouched, everything else is JSON-serialized. Serialization
// failures (cyclic structures, channels) surface to the caller.
func CommandValue(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("canonicalize command value: %w", err)
		}
		return string(raw), nil
	}
}

// issueCommand writes one encoded command line to w. The message is passed
// through CommandValue first, so structured values are legal.
func issueCommand(w io.Writer, name string, props CommandProperties, message any) error {
	msg, err := CommandValue(message)
	if err != nil {
		return err
	}
	cmd := Command{Name: name, Properties: props, Message: msg}
	_, err = fmt.Fprintln(w, cmd.String())
	return err
}
