package cli

import (
	"context"

	"github.com/semilin/kmdata/internal/model"
)

// corpusView is a corpus with its character groups as strings instead of code points
type corpusView struct {
	CharList  []string `json:"charList"`
	Chars     []uint32 `json:"chars"`
	Bigrams   []uint32 `json:"bigrams"`
	Skipgrams []uint32 `json:"skipgrams"`
	Trigrams  []uint32 `json:"trigrams"`
}

func newCorpusView(c *model.CorpusData) corpusView {
	v := corpusView{
		CharList:  make([]string, 0, len(c.CharList)),
		Chars:     c.Chars,
		Bigrams:   c.Bigrams,
		Skipgrams: c.Skipgrams,
		Trigrams:  c.Trigrams,
	}
	for _, group := range c.CharList {
		v.CharList = append(v.CharList, model.CharString(group))
	}
	return v
}

// Show prints the decoded resource as indented JSON
func Show(ctx context.Context, category, name string) error {
	c, err := model.ParseCategory(category)
	if err != nil {
		Stderrf("%v", err)
		return err
	}

	s, err := openStore(ctx, true)
	if err != nil {
		return err
	}

	res, err := s.Load(c, name)
	if err != nil {
		printLoadError(c, name, err)
		return err
	}
	if corpus, ok := res.(*model.CorpusData); ok {
		return printJSON(newCorpusView(corpus))
	}
	return printJSON(res)
}
