package cli

import (
	"context"
	"fmt"
)

// Dir prints the absolute path of the data directory, creating it if necessary. Nothing is downloaded.
func Dir(ctx context.Context) error {
	s, err := openStore(ctx, false)
	if err != nil {
		return err
	}
	fmt.Println(s.Dir())
	return nil
}
