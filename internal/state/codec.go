package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/rolodex/internal/contact"
)

// codec turns the ordered contact list into file bytes and back.
// Both encodings write a single mapping of name to record, in book order.
type codec interface {
	encode(contacts []contact.Contact) ([]byte, error)
	decode(data []byte) ([]contact.Contact, error)
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

// record is the on-disk shape of one contact. Absent optional fields are
// written as null.
type record struct {
	Phone   string  `json:"phone" yaml:"phone"`
	Email   *string `json:"email" yaml:"email"`
	Address *string `json:"address" yaml:"address"`
	Group   string  `json:"group" yaml:"group"`
	Created string  `json:"created" yaml:"created"`
	Updated string  `json:"updated" yaml:"updated"`
}

func toRecord(c contact.Contact) record {
	return record{
		Phone:   c.Phone,
		Email:   optional(c.Email),
		Address: optional(c.Address),
		Group:   string(c.Group),
		Created: c.Created.Format(contact.TimeLayout),
		Updated: c.Updated.Format(contact.TimeLayout),
	}
}

func fromRecord(name string, r record) (contact.Contact, error) {
	if name == "" {
		return contact.Contact{}, errors.New("empty contact name")
	}
	created, err := time.ParseInLocation(contact.TimeLayout, r.Created, time.Local)
	if err != nil {
		return contact.Contact{}, fmt.Errorf("contact %q: created: %w", name, err)
	}
	updated, err := time.ParseInLocation(contact.TimeLayout, r.Updated, time.Local)
	if err != nil {
		return contact.Contact{}, fmt.Errorf("contact %q: updated: %w", name, err)
	}
	return contact.Contact{
		Name:    name,
		Phone:   r.Phone,
		Email:   deref(r.Email),
		Address: deref(r.Address),
		Group:   contact.NormalizeGroup(r.Group),
		Created: created,
		Updated: updated,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ordered collects decoded contacts in file order. A repeated name keeps its
// first position and takes the later value.
type ordered struct {
	list  []contact.Contact
	index map[string]int
}

func (o *ordered) put(c contact.Contact) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[c.Name]; ok {
		o.list[i] = c
		return
	}
	o.index[c.Name] = len(o.list)
	o.list = append(o.list, c)
}

// jsonCodec writes an indented JSON object. encoding/json does not keep map
// key order, so the object is assembled and walked token by token.
type jsonCodec struct{}

func (jsonCodec) encode(contacts []contact.Contact) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, c := range contacts {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.MarshalIndent(toRecord(c), "  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if len(contacts) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func (jsonCodec) decode(data []byte) ([]contact.Contact, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var out ordered
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected contact name, got %v", tok)
		}
		var r record
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("contact %q: %w", name, err)
		}
		c, err := fromRecord(name, r)
		if err != nil {
			return nil, err
		}
		out.put(c)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after contacts at offset %d", dec.InputOffset())
	}
	return out.list, nil
}

// yamlCodec writes a YAML mapping built from nodes so key order is kept.
type yamlCodec struct{}

func (yamlCodec) encode(contacts []contact.Contact) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range contacts {
		var val yaml.Node
		if err := val.Encode(toRecord(c)); err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name}
		root.Content = append(root.Content, key, &val)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) decode(data []byte) ([]contact.Contact, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping of contact names")
	}

	mapping := doc.Content[0]
	var out ordered
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		var r record
		if err := mapping.Content[i+1].Decode(&r); err != nil {
			return nil, fmt.Errorf("contact %q: %w", name, err)
		}
		c, err := fromRecord(name, r)
		if err != nil {
			return nil, err
		}
		out.put(c)
	}
	return out.list, nil
}
