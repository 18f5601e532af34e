// Command inspect dumps the Badger keyspace as a table, for poking at a
// node's data directory during development.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "badger", "Path to badger DB")
	prefix := flag.String("prefix", "conv:", "Prefix to scan (conv:, msg:, listing:, user:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				kind, at, entityID, detail := describe(key, v)
				table.Append([]string{key, kind, at, shortID(entityID), detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe classifies a record by its key prefix and pulls the fields
// worth seeing at a glance. Secondary index keys carry no JSON body and
// are shown as-is.
func describe(key string, value []byte) (kind, at, entityID, detail string) {
	switch {
	case strings.HasPrefix(key, "conv:pair:") || strings.HasPrefix(key, "conv:user:"):
		return "INDEX", "", string(value), ""
	case strings.HasPrefix(key, "conv:"):
		var doc struct {
			ID           string    `json:"id"`
			Participants [2]string `json:"participants"`
			ListingID    string    `json:"listing_id"`
			LastActivity time.Time `json:"last_activity"`
		}
		if err := json.Unmarshal(value, &doc); err != nil {
			return "CONV", "", "", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "CONV", doc.LastActivity.Format("15:04:05"), doc.ID,
			fmt.Sprintf("%s <-> %s listing=%s", doc.Participants[0], doc.Participants[1], doc.ListingID)
	case strings.HasPrefix(key, "msg:"):
		var doc struct {
			ID        string    `json:"id"`
			SenderID  string    `json:"sender_id"`
			Body      string    `json:"body"`
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(value, &doc); err != nil {
			return "MSG", "", "", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "MSG", doc.CreatedAt.Format("15:04:05"), doc.ID,
			fmt.Sprintf("from=%s %s", doc.SenderID, truncate(doc.Body, 60))
	case strings.HasPrefix(key, "listing:owner:"):
		return "INDEX", "", "", ""
	case strings.HasPrefix(key, "listing:"):
		var doc struct {
			ID        string    `json:"id"`
			Title     string    `json:"title"`
			Category  string    `json:"category"`
			Price     float64   `json:"price"`
			City      string    `json:"city"`
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(value, &doc); err != nil {
			return "LISTING", "", "", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "LISTING", doc.CreatedAt.Format("15:04:05"), doc.ID,
			fmt.Sprintf("%s %s %s %.0f", truncate(doc.Title, 40), doc.Category, doc.City, doc.Price)
	case strings.HasPrefix(key, "user:"):
		var doc struct {
			ID        string    `json:"id"`
			Name      string    `json:"name"`
			Email     string    `json:"email"`
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(value, &doc); err != nil {
			return "USER", "", "", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "USER", doc.CreatedAt.Format("15:04:05"), doc.ID,
			fmt.Sprintf("%s <%s>", doc.Name, doc.Email)
	default:
		return "RAW", "", "", truncate(string(value), 60)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)
	return badger.Open(opts)
}
