package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/craftbase-io/cms-client/internal/constants"
	"github.com/craftbase-io/cms-client/pkg/cms"
)

// NewContentCommand creates the content command group.
func NewContentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "content",
		Aliases: []string{"items"},
		Short:   "Manage content items",
		Long:    "Get, list, create, update, and delete content items",
	}

	cmd.AddCommand(newContentGetCommand())
	cmd.AddCommand(newContentListCommand())
	cmd.AddCommand(newContentCreateCommand())
	cmd.AddCommand(newContentUpdateCommand())
	cmd.AddCommand(newContentDeleteCommand())

	return cmd
}

func newContentGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a content item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Content().Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			return outputContentItem(&result.Data, result.ETag)
		},
	}
}

// ContentListOptions holds the options for listing content items.
type ContentListOptions struct {
	PageIndex int
	PageSize  int
}

func newContentListCommand() *cobra.Command {
	var opts ContentListOptions

	cmd := &cobra.Command{
		Use:   "list CONTAINER_KEY",
		Short: "List content items in a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listOpts := &cms.ListOptions{}

			// Only forward what the user actually set; the server applies
			// its own defaults otherwise.
			if cmd.Flags().Changed("page") {
				listOpts.PageIndex = cms.Int(opts.PageIndex)
			}

			if cmd.Flags().Changed("page-size") {
				listOpts.PageSize = cms.Int(opts.PageSize)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			page, err := client.Content().List(context.Background(), args[0], listOpts)
			if err != nil {
				return err
			}

			return outputContentPage(page)
		},
	}

	cmd.Flags().IntVar(&opts.PageIndex, "page", 0, "page index")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", constants.StandardPageSize, "results per page")

	return cmd
}

func newContentCreateCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a content item",
		Long:  "Create a content item from a JSON document supplied inline or from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readContentRequest(data, file)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Content().Create(context.Background(), request)
			if err != nil {
				return err
			}

			return outputContentItem(&result.Data, result.ETag)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "item JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a file with the item JSON")

	return cmd
}

func newContentUpdateCommand() *cobra.Command {
	var (
		data string
		file string
		etag string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a content item",
		Long:  "Apply a JSON merge-patch to a content item (preview3 only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readContentRequest(data, file)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Content().Update(context.Background(), args[0], request, etag)
			if err != nil {
				return err
			}

			return outputContentItem(&result.Data, result.ETag)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "merge-patch JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a file with the merge-patch JSON")
	cmd.Flags().StringVar(&etag, "etag", "", "expected ETag for a conditional update")

	return cmd
}

func newContentDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a content item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			_, err = client.Content().Delete(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Content item %s deleted\n", args[0])

			return nil
		},
	}
}

// errDataRequired is returned when neither --data nor --file is given.
var errDataRequired = fmt.Errorf("provide the item JSON via --data or --file")

func readContentRequest(data, file string) (*cms.ContentRequest, error) {
	raw := []byte(data)

	if file != "" {
		content, err := os.ReadFile(file) // #nosec G304 -- user-supplied path by design
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		raw = content
	}

	if len(raw) == 0 {
		return nil, errDataRequired
	}

	var request cms.ContentRequest

	err := json.Unmarshal(raw, &request)
	if err != nil {
		return nil, fmt.Errorf("parsing item JSON: %w", err)
	}

	return &request, nil
}

func outputContentItem(item *cms.ContentItem, etag string) error {
	return output(item, func() error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")

		_ = table.Append("ID", item.ID)
		_ = table.Append("Content Type", item.ContentType)
		_ = table.Append("Name", item.Name)

		if etag != "" {
			_ = table.Append("ETag", etag)
		}

		// Stable ordering for the open-ended fields.
		keys := make([]string, 0, len(item.Fields))
		for key := range item.Fields {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_ = table.Append(key, fmt.Sprintf("%v", item.Fields[key]))
		}

		return table.Render()
	})
}

func outputContentPage(page *cms.Page[cms.ContentItem]) error {
	return output(page, func() error {
		if len(page.Items) == 0 {
			_, _ = os.Stdout.WriteString("No content items found\n")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Content Type", "Name")

		for _, item := range page.Items {
			_ = table.Append(item.ID, item.ContentType, item.Name)
		}

		err := table.Render()
		if err != nil {
			return err
		}

		fmt.Printf("Page %s (size %s), %s items total\n",
			strconv.Itoa(page.PageIndex), strconv.Itoa(page.PageSize), strconv.Itoa(page.TotalItemCount))

		return nil
	})
}
