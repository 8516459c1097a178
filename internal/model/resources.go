package model

import (
	"fmt"
	"unicode/utf8"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// CorpusData holds n-gram frequencies of a text corpus. CharList maps a character index to the
// characters folded onto it; Chars, Bigrams, Skipgrams and Trigrams are flat count tables
// indexed by combinations of character indices.
type CorpusData struct {
	CharList  [][]Char `msgpack:"char_list" json:"charList"`
	Chars     []uint32 `msgpack:"chars" json:"chars"`
	Bigrams   []uint32 `msgpack:"bigrams" json:"bigrams"`
	Skipgrams []uint32 `msgpack:"skipgrams" json:"skipgrams"`
	Trigrams  []uint32 `msgpack:"trigrams" json:"trigrams"`
}

// MetricData is a precomputed metric table for one physical keyboard
type MetricData struct {
	Metrics  []Metric     `msgpack:"metrics" json:"metrics"`
	Strokes  []StrokeData `msgpack:"strokes" json:"strokes"`
	Keyboard KeyboardData `msgpack:"keyboard" json:"keyboard"`
}

type Metric struct {
	Name      string `msgpack:"name" json:"name"`
	ShortName string `msgpack:"short" json:"short"`
	Goal      string `msgpack:"goal" json:"goal"`
}

// StrokeData lists the metric amounts of a single n-stroke, given as key position indices
type StrokeData struct {
	Nstroke []uint16       `msgpack:"nstroke" json:"nstroke"`
	Amounts []MetricAmount `msgpack:"amounts" json:"amounts"`
}

type MetricAmount struct {
	Metric uint16  `msgpack:"metric" json:"metric"`
	Amount float32 `msgpack:"amount" json:"amount"`
}

type KeyboardData struct {
	Name string        `msgpack:"name" json:"name"`
	Keys []KeyPosition `msgpack:"keys" json:"keys"`
}

type KeyPosition struct {
	X      float32 `msgpack:"x" json:"x"`
	Y      float32 `msgpack:"y" json:"y"`
	Finger uint8   `msgpack:"finger" json:"finger"`
}

// LayoutData describes a keyboard layout. Keyboard names the metric table the layout is meant for.
type LayoutData struct {
	Name        string   `json:"name"`
	Authors     []string `json:"authors,omitempty"`
	Description string   `json:"description,omitempty"`
	Year        int      `json:"year,omitempty"`
	Link        string   `json:"link,omitempty"`
	Keyboard    string   `json:"keyboard,omitempty"`
	Matrix      []string `json:"matrix,omitempty"`
}

// Char is a single character of a corpus. It is written as a one-character msgpack string,
// integer code points are read as well.
type Char rune

var _ msgpack.CustomEncoder = Char(0)
var _ msgpack.CustomDecoder = (*Char)(nil)

func (c Char) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(string(rune(c)))
}

func (c *Char) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if !msgpcode.IsString(code) {
		r, err := dec.DecodeInt32()
		if err != nil {
			return err
		}
		*c = Char(r)
		return nil
	}

	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
		return fmt.Errorf("msgpack: expected a single character, got %q", s)
	}
	*c = Char(r)
	return nil
}

// CharString joins chars into a string
func CharString(chars []Char) string {
	rs := make([]rune, len(chars))
	for i, c := range chars {
		rs[i] = rune(c)
	}
	return string(rs)
}
