package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"storefront/pkg/client"
	"storefront/pkg/model"
)

func requireArg(c *cli.Context, name string) (string, error) {
	arg := c.Args().First()
	if arg == "" {
		return "", fmt.Errorf("%s: missing %s argument", c.Command.Name, name)
	}
	return arg, nil
}

func commands(s *session) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "log in as the store admin and keep the session",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Value: "admin"},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, EnvVars: []string{"CATALOG_PASSWORD"}, Required: true},
			},
			Action: func(c *cli.Context) error {
				if err := s.catalog.Login(c.Context, c.String("username"), c.String("password")); err != nil {
					return err
				}
				_, err := fmt.Fprintln(s.out, "logged in")
				return err
			},
		},
		{
			Name:  "logout",
			Usage: "forget the stored session",
			Action: func(c *cli.Context) error {
				if err := s.catalog.Logout(c.Context); err != nil {
					return err
				}
				_, err := fmt.Fprintln(s.out, "logged out")
				return err
			},
		},
		{
			Name:  "categories",
			Usage: "list categories",
			Action: func(c *cli.Context) error {
				categories, err := s.catalog.Categories(c.Context)
				if err != nil {
					return err
				}
				return s.print(categories)
			},
		},
		{
			Name:      "category",
			Usage:     "show one category",
			ArgsUsage: "<slug>",
			Action: func(c *cli.Context) error {
				slug, err := requireArg(c, "slug")
				if err != nil {
					return err
				}
				category, err := s.catalog.Category(c.Context, slug)
				if err != nil {
					return err
				}
				return s.print(category)
			},
		},
		{
			Name:  "products",
			Usage: "list products",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "category", Usage: "category slug"},
				&cli.BoolFlag{Name: "featured"},
				&cli.BoolFlag{Name: "premium"},
				&cli.BoolFlag{Name: "custom"},
				&cli.IntFlag{Name: "page"},
				&cli.IntFlag{Name: "limit"},
			},
			Action: func(c *cli.Context) error {
				page, err := s.catalog.Products(c.Context, client.ProductQuery{
					Category: c.String("category"),
					Featured: c.Bool("featured"),
					Premium:  c.Bool("premium"),
					Custom:   c.Bool("custom"),
					Page:     c.Int("page"),
					Limit:    c.Int("limit"),
				})
				if err != nil {
					return err
				}
				return s.print(page)
			},
		},
		{
			Name:      "product",
			Usage:     "show one product",
			ArgsUsage: "<slug>",
			Action: func(c *cli.Context) error {
				slug, err := requireArg(c, "slug")
				if err != nil {
					return err
				}
				product, err := s.catalog.Product(c.Context, slug)
				if err != nil {
					return err
				}
				return s.print(product)
			},
		},
		{
			Name:      "search",
			Usage:     "search products by name and description",
			ArgsUsage: "<query>",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit"},
			},
			Action: func(c *cli.Context) error {
				q, err := requireArg(c, "query")
				if err != nil {
					return err
				}
				products, err := s.catalog.Search(c.Context, q, c.Int("limit"))
				if err != nil {
					return err
				}
				return s.print(products)
			},
		},
		{
			Name:      "contact",
			Usage:     "print the messaging link for a product inquiry",
			ArgsUsage: "<slug>",
			Action: func(c *cli.Context) error {
				slug, err := requireArg(c, "slug")
				if err != nil {
					return err
				}
				link, err := s.catalog.ContactLink(c.Context, slug)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(s.out, link.URL)
				return err
			},
		},
		{
			Name:      "reviews",
			Usage:     "list the reviews of a product",
			ArgsUsage: "<product-id>",
			Action: func(c *cli.Context) error {
				id, err := requireArg(c, "product id")
				if err != nil {
					return err
				}
				reviews, err := s.catalog.Reviews(c.Context, id)
				if err != nil {
					return err
				}
				return s.print(reviews)
			},
		},
		{
			Name:  "review",
			Usage: "submit a review",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "product", Required: true},
				&cli.StringFlag{Name: "name", Required: true},
				&cli.IntFlag{Name: "rating", Required: true},
				&cli.StringFlag{Name: "comment", Required: true},
			},
			Action: func(c *cli.Context) error {
				review, err := s.catalog.CreateReview(c.Context, &model.Review{
					ProductID: c.String("product"),
					Name:      c.String("name"),
					Rating:    c.Int("rating"),
					Comment:   c.String("comment"),
				})
				if err != nil {
					return err
				}
				return s.print(review)
			},
		},
		adminCommand(s),
		watchCommand(s),
	}
}

func adminCommand(s *session) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "manage categories and products (requires login)",
		Subcommands: []*cli.Command{
			{
				Name:  "create-category",
				Usage: "create a category",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "slug"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "image"},
				},
				Action: func(c *cli.Context) error {
					category, err := s.catalog.CreateCategory(c.Context, &model.Category{
						Name:        c.String("name"),
						Slug:        c.String("slug"),
						Description: c.String("description"),
						Image:       c.String("image"),
					})
					if err != nil {
						return err
					}
					return s.print(category)
				},
			},
			{
				Name:      "update-category",
				Usage:     "change the given fields of a category",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "slug"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "image"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					category, err := s.catalog.UpdateCategory(c.Context, id, &model.CategoryUpdate{
						Name:        stringFlag(c, "name"),
						Slug:        stringFlag(c, "slug"),
						Description: stringFlag(c, "description"),
						Image:       stringFlag(c, "image"),
					})
					if err != nil {
						return err
					}
					return s.print(category)
				},
			},
			{
				Name:      "delete-category",
				Usage:     "delete an empty category",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if err := s.catalog.DeleteCategory(c.Context, id); err != nil {
						return err
					}
					_, err = fmt.Fprintln(s.out, "deleted", id)
					return err
				},
			},
			{
				Name:  "create-product",
				Usage: "create a product",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "price", Required: true},
					&cli.StringFlag{Name: "category-id", Required: true},
					&cli.StringFlag{Name: "slug"},
					&cli.StringFlag{Name: "description"},
					&cli.StringSliceFlag{Name: "image"},
					&cli.BoolFlag{Name: "featured"},
					&cli.BoolFlag{Name: "premium"},
					&cli.BoolFlag{Name: "custom"},
					&cli.BoolFlag{Name: "in-stock", Value: true},
				},
				Action: func(c *cli.Context) error {
					product, err := s.catalog.CreateProduct(c.Context, &model.Product{
						Name:        c.String("name"),
						Slug:        c.String("slug"),
						Description: c.String("description"),
						Price:       c.String("price"),
						CategoryID:  c.String("category-id"),
						Images:      c.StringSlice("image"),
						Featured:    c.Bool("featured"),
						Premium:     c.Bool("premium"),
						Custom:      c.Bool("custom"),
						InStock:     c.Bool("in-stock"),
					})
					if err != nil {
						return err
					}
					return s.print(product)
				},
			},
			{
				Name:      "update-product",
				Usage:     "change the given fields of a product",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "slug"},
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "price"},
					&cli.StringFlag{Name: "category-id"},
					&cli.BoolFlag{Name: "featured"},
					&cli.BoolFlag{Name: "premium"},
					&cli.BoolFlag{Name: "custom"},
					&cli.BoolFlag{Name: "in-stock"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					product, err := s.catalog.UpdateProduct(c.Context, id, &model.ProductUpdate{
						Name:        stringFlag(c, "name"),
						Slug:        stringFlag(c, "slug"),
						Description: stringFlag(c, "description"),
						Price:       stringFlag(c, "price"),
						CategoryID:  stringFlag(c, "category-id"),
						Featured:    boolFlag(c, "featured"),
						Premium:     boolFlag(c, "premium"),
						Custom:      boolFlag(c, "custom"),
						InStock:     boolFlag(c, "in-stock"),
					})
					if err != nil {
						return err
					}
					return s.print(product)
				},
			},
			{
				Name:      "delete-product",
				Usage:     "delete a product and its reviews",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "id")
					if err != nil {
						return err
					}
					if err := s.catalog.DeleteProduct(c.Context, id); err != nil {
						return err
					}
					_, err = fmt.Fprintln(s.out, "deleted", id)
					return err
				},
			},
		},
	}
}

// stringFlag returns nil for flags the user did not pass, so partial
// updates leave those fields alone.
func stringFlag(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func boolFlag(c *cli.Context, name string) *bool {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Bool(name)
	return &v
}
