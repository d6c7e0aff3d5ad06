package core

import (
	"maps"
	"strconv"
	"strings"
)

// ConnectionParams holds everything needed to open a connection to one database.
// Plugins take a private copy at construction and never mutate it afterwards.
type ConnectionParams struct {
	Host       string
	Port       int
	Database   string
	User       string
	Password   string
	Attributes map[string]string
}

// Clone returns a deep copy. The attribute map is never shared.
func (p ConnectionParams) Clone() ConnectionParams {
	out := p
	out.Attributes = make(map[string]string, len(p.Attributes))
	maps.Copy(out.Attributes, p.Attributes)
	return out
}

// Attr returns the attribute value for key (case-insensitive) or "".
func (p ConnectionParams) Attr(key string) string {
	if v, ok := p.Attributes[key]; ok {
		return v
	}
	for k, v := range p.Attributes {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// Address returns host:port, falling back to defaultPort when Port is 0.
func (p ConnectionParams) Address(defaultPort int) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = defaultPort
	}
	return host + ":" + strconv.Itoa(port)
}

// Redacted returns a copy safe to log: the password is masked.
func (p ConnectionParams) Redacted() ConnectionParams {
	out := p.Clone()
	if out.Password != "" {
		out.Password = "****"
	}
	return out
}
