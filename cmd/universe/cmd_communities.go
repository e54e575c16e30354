package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxy-universe/universe"
	"github.com/spf13/cobra"
)

var communitiesCmd = &cobra.Command{
	Use:   "communities",
	Short: "List the communities in the universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := universe.NewCatalog(universe.WithCommunities(communitiesFromConfig(cfg.Communities)...))
		list := catalog.All()
		if joinedOnly {
			list = catalog.Joined()
		}
		return printCommunities(cmd.OutOrStdout(), list, 0)
	},
}

var createReq universe.CreateRequest

var communitiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a community and show where its planet lands",
	Long: `create adds a community to the universe loaded from the config and prints it.
The creator joins it automatically and it is placed outside the seeded cluster.
Valid types: ` + strings.Join(universe.CommunityTypes, ", "),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := universe.NewCatalog(
			universe.WithCommunities(communitiesFromConfig(cfg.Communities)...),
			universe.WithCatalogLogger(logger),
		)
		return createCommunity(catalog, createReq, cmd.OutOrStdout())
	},
}

// createCommunity creates req in catalog and prints the new community with its place in the list.
func createCommunity(catalog universe.Catalog, req universe.CreateRequest, w io.Writer) error {
	created, err := catalog.Create(req)
	if err != nil {
		return fmt.Errorf("failed to create community: %w", err)
	}
	fmt.Fprintf(w, "created %s (%s)\n", created.Name, created.ID)
	fmt.Fprintf(w, "banner: %s\n\n", created.BannerURL)

	all := catalog.All()
	return printCommunities(w, all[len(all)-1:], len(all)-1)
}

func init() {
	f := communitiesCreateCmd.Flags()
	f.StringVar(&createReq.Name, "name", "", "Community name (required)")
	f.StringVar(&createReq.Description, "description", "", "Community description (required)")
	f.StringVar(&createReq.Type, "type", "", "Community type (required)")
	f.StringVar(&createReq.BannerURL, "banner", "", "Banner image URL (default: built-in banner)")
	_ = communitiesCreateCmd.MarkFlagRequired("name")
	_ = communitiesCreateCmd.MarkFlagRequired("description")
	_ = communitiesCreateCmd.MarkFlagRequired("type")

	communitiesCmd.AddCommand(communitiesCreateCmd)
}

// printCommunities writes a table of communities numbered from offset+1.
func printCommunities(w io.Writer, communities []universe.Community, offset int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tCATEGORY\tMEMBERS\tJOINED\tANCHOR")
	for i, c := range communities {
		joined := ""
		if c.Joined {
			joined = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t(%g, %g, %g)\n",
			offset+i+1, c.Name, c.Category, c.Members, joined, c.Anchor[0], c.Anchor[1], c.Anchor[2])
	}
	return tw.Flush()
}
