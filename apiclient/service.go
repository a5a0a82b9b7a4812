package apiclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/orderapi/contract-tests/apidef"
)

const awaitServicePollInterval = time.Millisecond * 500

// AwaitService polls the ingredient catalog until the API answers with 200, printing progress to
// output. It returns the last error once timeout has elapsed.
func (c *Client) AwaitService(ctx context.Context, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to API at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		items, err := c.Ingredients(ctx)
		if err == nil {
			fmt.Fprintln(output)
			fmt.Fprintf(output, "API is up; catalog has %d ingredients\n", len(items))
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for GET %s, result of last query was: %w", apidef.PathIngredients, err)
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return ctx.Err()
		case <-time.After(awaitServicePollInterval):
		}
	}
}
