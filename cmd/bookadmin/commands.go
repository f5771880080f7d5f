package main

import (
	"fmt"
	"net/http"

	"github.com/raywall/book-library-toolkit/cosmosauth"
	"github.com/raywall/book-library-toolkit/library"
	"github.com/raywall/book-library-toolkit/pkg/selector"
	"github.com/raywall/book-library-toolkit/pkg/source"
	"github.com/spf13/cobra"
)

// idRange resolve --from/--to: flags informadas vencem a configuração.
func idRange(cmd *cobra.Command, from, to, cfgFrom, cfgTo int) (int, int, error) {
	if !cmd.Flags().Changed("from") {
		from = cfgFrom
	}
	if !cmd.Flags().Changed("to") {
		to = cfgTo
	}
	if from < 0 || to > 999 || from > to {
		return 0, 0, fmt.Errorf("faixa inválida: %d..%d", from, to)
	}
	return from, to, nil
}

func (c *cli) containerOr(name string) string {
	if name != "" {
		return name
	}
	return c.cfg.Cosmos.Container
}

func (c *cli) insertCmd() *cobra.Command {
	var (
		container, dataDir string
		from, to           int
		all, noVerify      bool
	)
	cmd := &cobra.Command{
		Use:   "insert [book###.json ...]",
		Short: "Insert book files into a collection",
		Long: `Insert book files into a collection, one create call per file.

Files are read from the data directory (or s3://bucket/prefix). Without
arguments the configured id range is used; --all inserts every book###.json
found. Failures are reported per file and do not stop the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := dataDir
			if dir == "" {
				dir = c.cfg.Data.Dir
			}
			src, err := source.Open(ctx, dir, c.cfg.Store.Region)
			if err != nil {
				return err
			}

			names := args
			switch {
			case len(names) > 0:
			case all:
				if names, err = src.List(ctx); err != nil {
					return err
				}
			default:
				lo, hi, err := idRange(cmd, from, to, c.cfg.Data.InsertFrom, c.cfg.Data.InsertTo)
				if err != nil {
					return err
				}
				for _, id := range library.BookIDs(lo, hi) {
					names = append(names, library.FileName(id))
				}
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			c.newAdmin(store).InsertBooks(ctx, c.containerOr(container), src, names, !noVerify)
			return nil
		},
	}
	cmd.Flags().StringVar(&container, "container", "", "target collection (default: cosmos.container)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory or s3:// prefix with the book files (default: data.dir)")
	cmd.Flags().IntVar(&from, "from", 0, "first book number (default: data.insert_from)")
	cmd.Flags().IntVar(&to, "to", 0, "last book number (default: data.insert_to)")
	cmd.Flags().BoolVar(&all, "all", false, "insert every book###.json in the data directory")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip the listing after the inserts")
	return cmd
}

func (c *cli) cleanupCmd() *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:   "cleanup [collection ...]",
		Short: "Delete documents from collections",
		Long: `Delete every document of the given collections (default: cosmos.containers).

--where takes a CEL expression over "doc" (the document) and "container";
only matching documents are deleted, e.g. --where 'doc.title == ""'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selector.Compile(where)
			if err != nil {
				return err
			}
			containers := args
			if len(containers) == 0 {
				containers = c.cfg.Cosmos.Containers
			}

			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			c.newAdmin(store).Cleanup(cmd.Context(), containers, sel)
			return nil
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "CEL filter selecting the documents to delete")
	return cmd
}

func (c *cli) removeCmd() *cobra.Command {
	var (
		container string
		from, to  int
	)
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Delete the books book<from>..book<to>",
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := idRange(cmd, from, to, c.cfg.Data.RemoveFrom, c.cfg.Data.RemoveTo)
			if err != nil {
				return err
			}
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			c.newAdmin(store).RemoveRange(cmd.Context(), c.containerOr(container), lo, hi)
			return nil
		},
	}
	cmd.Flags().StringVar(&container, "container", "", "target collection (default: cosmos.container)")
	cmd.Flags().IntVar(&from, "from", 0, "first book number (default: data.remove_from)")
	cmd.Flags().IntVar(&to, "to", 0, "last book number (default: data.remove_to)")
	return cmd
}

func (c *cli) blankCmd() *cobra.Command {
	var (
		dir      string
		from, to int
	)
	cmd := &cobra.Command{
		Use:   "blank",
		Short: "Write blank book files book<from>..book<to>",
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, hi, err := idRange(cmd, from, to, c.cfg.Data.BlankFrom, c.cfg.Data.BlankTo)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = c.cfg.Data.Dir
			}
			out, err := source.LocalDir(dir)
			if err != nil {
				return err
			}
			c.newAdmin(nil).CreateBlankBooks(cmd.Context(), out, lo, hi)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default: data.dir)")
	cmd.Flags().IntVar(&from, "from", 0, "first book number (default: data.blank_from)")
	cmd.Flags().IntVar(&to, "to", 0, "last book number (default: data.blank_to)")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var container string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the books of a collection sorted by title",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.newAdmin(store).ShowBooks(cmd.Context(), c.containerOr(container)); err != nil {
				c.console.Failure("Error querying books: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&container, "container", "", "collection to list (default: cosmos.container)")
	return cmd
}

func (c *cli) signCmd() *cobra.Command {
	var verb, resourceType, link, date, key string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the signed authorization token of a REST request",
		Long: `Print the master-key authorization token of a REST request.

The key comes from --key or, when omitted, from the configured credential
source. Without --link the collection link of cosmos.container is signed;
without --date the current time is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				info, err := c.connectionInfo(cmd.Context())
				if err != nil {
					return err
				}
				key = info.Key
			}
			if link == "" {
				link = "dbs/" + c.cfg.Cosmos.Database + "/colls/" + c.cfg.Cosmos.Container
			}

			_, err := c.newAdmin(nil).SignRequest(cosmosauth.Request{
				Verb:         verb,
				ResourceType: resourceType,
				ResourceLink: link,
				Date:         date,
			}, key)
			return err
		},
	}
	cmd.Flags().StringVar(&verb, "verb", http.MethodGet, "HTTP verb")
	cmd.Flags().StringVar(&resourceType, "resource-type", "docs", "resource type (dbs, colls, docs...)")
	cmd.Flags().StringVar(&link, "link", "", "resource link, e.g. dbs/BookLibraryDB/colls/Books")
	cmd.Flags().StringVar(&date, "date", "", "x-ms-date value (RFC 1123, GMT)")
	cmd.Flags().StringVar(&key, "key", "", "base64 master key")
	return cmd
}
