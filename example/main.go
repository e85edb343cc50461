package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/Jumpaku/go-drivestore"
	"github.com/Jumpaku/go-drivestore/backend/gdrive"
	"github.com/Jumpaku/go-drivestore/backend/memory"
	"github.com/Jumpaku/go-drivestore/drivestoremust"
)

type Dog struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
}

func newBackend(ctx context.Context) drivestore.Backend {
	if len(os.Args) > 1 && os.Args[1] == "-memory" {
		return memory.New()
	}

	client, err := google.DefaultClient(ctx,
		drive.DriveAppdataScope,
	)
	if err != nil {
		log.Panic(err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.Panic(err)
	}
	return gdrive.New(driveService, gdrive.WithSpaces("appDataFolder"))
}

var sc = func() *bufio.Scanner {
	sc := bufio.NewScanner(os.Stdin)
	sc.Split(bufio.ScanLines)
	return sc
}()

func step() {
	sc.Scan()
}

func main() {
	ctx := context.Background()
	store := drivestore.New(newBackend(ctx), drivestore.WithVerbose(true))

	// Save one document; just-dogs and just-dogs/dogs are created on demand
	err := store.Save(ctx, "just-dogs/dogs", drivestore.Document{
		Title: "rex.json",
		Value: Dog{Name: "Rex", Breed: "Beagle", Age: 3},
	})
	if err != nil {
		log.Fatal(err)
	}

	// Save several documents concurrently
	step()
	err = store.SaveAll(ctx, "just-dogs/dogs", []drivestore.SaveRequest{
		drivestore.Document{Title: "spike.json", Value: Dog{Name: "Spike", Breed: "Bulldog", Age: 5}},
		drivestore.Document{Title: "bit.json", Value: Dog{Name: "Bit", Breed: "Terrier", Age: 1}},
		drivestore.Text{Title: "README.txt", Content: "One JSON document per dog."},
	}, 2)
	if err != nil {
		log.Fatal(err)
	}

	// Read a document back
	step()
	rex, err := drivestore.Get[Dog](ctx, store, "just-dogs/dogs/rex.json")
	if err != nil {
		log.Fatal(err)
	}
	if dog, ok := rex.Get(); ok {
		fmt.Printf("Read %s the %s, age %d\n", dog.Name, dog.Breed, dog.Age)
	}

	// A missing document is absent, not an error, and nothing gets created
	step()
	missing, err := drivestore.Get[Dog](ctx, store, "just-dogs/cats/tom.json")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Tom present: %v\n", missing.Present())

	// List the folder and decode every document in it
	step()
	dogs, err := drivestore.Documents[Dog](ctx, store, "just-dogs/dogs", "name contains '.json'")
	if err != nil {
		log.Fatal(err)
	}
	for _, dog := range dogs {
		fmt.Printf("- %s (%s)\n", dog.Name, dog.Breed)
	}

	// The same operations without error handling
	step()
	must := drivestoremust.Wrap(store)
	fmt.Println(must.String(ctx, "just-dogs/dogs/README.txt").OrElse("(empty)"))
	for _, r := range must.List(ctx, "just-dogs/dogs") {
		fmt.Printf("%s (ID: %s)\n", r.Name, r.ID)
	}

	// Delete everything
	step()
	must.Delete(ctx, "just-dogs")
	fmt.Println("Deleted just-dogs")
}
