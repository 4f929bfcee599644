package wordlist

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQuery reads words from the first column of a query result, in result order.
type BigQuery struct {
	Project  string
	Query    string
	Location string
}

func (b BigQuery) Words(ctx context.Context) ([]string, error) {
	client, err := bigquery.NewClient(ctx, b.Project)
	if err != nil {
		return nil, fmt.Errorf("%w: bigquery.NewClient: %w", ErrUnreadable, err)
	}
	defer client.Close()

	q := client.Query(b.Query)
	if b.Location != "" {
		q.Location = b.Location
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: q.Run: %w", ErrUnreadable, err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: job.Wait: %w", ErrUnreadable, err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("%w: status.Err: %w", ErrUnreadable, err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: job.Read: %w", ErrUnreadable, err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: it.Next: %w", ErrUnreadable, err)
		}
		if len(row) == 0 {
			continue
		}
		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			words = append(words, word)
		}
	}
	return words, nil
}

func (b BigQuery) String() string {
	return fmt.Sprintf("bigquery:%s", b.Project)
}
