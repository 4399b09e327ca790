package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/maakle/bombo-go/internal/storage"
)

func storageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "minio-host",
			Usage:    "Object store host",
			Required: true,
			EnvVars:  []string{"STACKHERO_MINIO_HOST"},
		},
		&cli.IntFlag{
			Name:    "minio-port",
			Usage:   "Object store port",
			Value:   443,
			EnvVars: []string{"STACKHERO_MINIO_PORT"},
		},
		&cli.StringFlag{
			Name:     "minio-access-key",
			Usage:    "Object store access key",
			Required: true,
			EnvVars:  []string{"STACKHERO_MINIO_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:     "minio-secret-key",
			Usage:    "Object store secret key",
			Required: true,
			EnvVars:  []string{"STACKHERO_MINIO_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:    "minio-bucket",
			Usage:   "Sticker bucket name",
			Value:   "bombo-images",
			EnvVars: []string{"STACKHERO_MINIO_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "minio-region",
			Usage:   "Bucket region",
			Value:   "us-east-1",
			EnvVars: []string{"STACKHERO_MINIO_REGION"},
		},
		&cli.BoolFlag{
			Name:    "minio-use-ssl",
			Usage:   "Connect over TLS",
			Value:   true,
			EnvVars: []string{"STACKHERO_MINIO_USE_SSL"},
		},
	}
}

func newStore(c *cli.Context) (*storage.MinioStore, error) {
	return storage.NewMinioStore(c.Context, storage.MinioConfig{
		Host:      c.String("minio-host"),
		Port:      c.Int("minio-port"),
		AccessKey: c.String("minio-access-key"),
		SecretKey: c.String("minio-secret-key"),
		Bucket:    c.String("minio-bucket"),
		Region:    c.String("minio-region"),
		UseSSL:    c.Bool("minio-use-ssl"),
	})
}

func runList(c *cli.Context) error {
	store, err := newStore(c)
	if err != nil {
		return err
	}

	images, err := store.ListImages(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	if len(images) == 0 {
		fmt.Println("no stickers stored")
		return nil
	}
	for _, img := range images {
		fmt.Printf("%s\t%d bytes\t%s\n", img.Key, img.Size, img.LastModified.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runPresign(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: stickerctl presign <key>")
	}

	store, err := newStore(c)
	if err != nil {
		return err
	}

	url, err := store.ImageURL(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func runDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: stickerctl delete <key>")
	}

	store, err := newStore(c)
	if err != nil {
		return err
	}

	key := c.Args().First()
	if err := store.DeleteImage(c.Context, key); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", key)
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "stickerctl",
		Usage: "Manage stored Bombo stickers",
		Flags: storageFlags(),
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored stickers",
				Flags: append(storageFlags(), &cli.StringFlag{
					Name:  "prefix",
					Usage: "Only list keys with this prefix",
					Value: "bombo-",
				}),
				Action: runList,
			},
			{
				Name:   "presign",
				Usage:  "Issue a fresh one-hour retrieval URL for a stored sticker",
				Flags:  storageFlags(),
				Action: runPresign,
			},
			{
				Name:   "delete",
				Usage:  "Remove a stored sticker",
				Flags:  storageFlags(),
				Action: runDelete,
			},
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
