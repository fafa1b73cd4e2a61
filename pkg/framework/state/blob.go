// Package state persists plugin state as an XML parameter tree wrapped in
// a versioned binary blob.
package state

import (
	"bytes"
	"encoding/binary"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"
)

const magic = "VST3GO"

// maxPayload bounds the XML section so a corrupt length cannot trigger a
// huge allocation.
const maxPayload = 16 << 20

var (
	// ErrInvalidState is returned for blobs that are truncated, carry the
	// wrong magic or do not parse.
	ErrInvalidState = errors.New("state: invalid state blob")
	// ErrIncompatibleVersion is returned for blobs written by a newer major
	// version.
	ErrIncompatibleVersion = errors.New("state: incompatible state version")
)

// Property is one saved parameter value, in its plain range.
type Property struct {
	ID    string  `xml:"id,attr"`
	Value float64 `xml:"value,attr"`
}

// Soundfont is the saved soundfont reference.
type Soundfont struct {
	Path string `xml:"path,attr"`
}

// Tree is the parameter tree snapshot. Type is the root element name and
// identifies which plugin wrote it.
type Tree struct {
	Type      string
	Params    []Property
	Soundfont *Soundfont
}

// Value returns the saved value for id.
func (t Tree) Value(id string) (float64, bool) {
	for _, p := range t.Params {
		if p.ID == id {
			return p.Value, true
		}
	}
	return 0, false
}

// SoundfontPath returns the saved path, or "" when none was saved.
func (t Tree) SoundfontPath() string {
	if t.Soundfont == nil {
		return ""
	}
	return t.Soundfont.Path
}

type xmlTree struct {
	XMLName   xml.Name
	Params    []Property `xml:"PARAM"`
	Soundfont *Soundfont `xml:"SOUNDFONT"`
}

// MarshalXML writes the tree with Type as the root element.
func (t Tree) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: t.Type}
	return e.EncodeElement(xmlTree{Params: t.Params, Soundfont: t.Soundfont}, start)
}

// UnmarshalXML reads any root element and records its name as Type.
func (t *Tree) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var x xmlTree
	if err := d.DecodeElement(&x, &start); err != nil {
		return err
	}
	*t = Tree{Type: start.Name.Local, Params: x.Params, Soundfont: x.Soundfont}
	return nil
}

// Encode writes the blob: magic, length-prefixed version string, payload
// length and the XML tree.
func Encode(w io.Writer, tree Tree, version *semver.Version) error {
	if tree.Type == "" {
		return fmt.Errorf("state: tree has no type")
	}
	payload, err := xml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("state: encode tree: %w", err)
	}
	v := version.String()

	var buf bytes.Buffer
	buf.WriteString(magic)
	binary.Write(&buf, binary.LittleEndian, uint16(len(v)))
	buf.WriteString(v)
	binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
	buf.Write(payload)

	_, err = w.Write(buf.Bytes())
	return err
}

// Decode reads a blob written by Encode. Blobs from a newer major version
// than supported are rejected.
func Decode(r io.Reader, supported *semver.Version) (Tree, *semver.Version, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return Tree{}, nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if string(header) != magic {
		return Tree{}, nil, fmt.Errorf("%w: bad magic %q", ErrInvalidState, header)
	}

	var vlen uint16
	if err := binary.Read(r, binary.LittleEndian, &vlen); err != nil {
		return Tree{}, nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	vbuf := make([]byte, vlen)
	if _, err := io.ReadFull(r, vbuf); err != nil {
		return Tree{}, nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	version, err := semver.NewVersion(string(vbuf))
	if err != nil {
		return Tree{}, nil, fmt.Errorf("%w: version %q: %v", ErrInvalidState, vbuf, err)
	}
	if supported != nil && version.Major() > supported.Major() {
		return Tree{}, version, fmt.Errorf("%w: %s is newer than %s", ErrIncompatibleVersion, version, supported)
	}

	var plen uint32
	if err := binary.Read(r, binary.LittleEndian, &plen); err != nil {
		return Tree{}, version, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if plen > maxPayload {
		return Tree{}, version, fmt.Errorf("%w: payload of %d bytes", ErrInvalidState, plen)
	}
	payload := make([]byte, plen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Tree{}, version, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	var tree Tree
	if err := xml.Unmarshal(payload, &tree); err != nil {
		return Tree{}, version, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return tree, version, nil
}
