package alfred_test

import (
	"log"
	"os"

	alfred "github.com/alfredtools/go-alfred"
	"github.com/alfredtools/go-alfred/jsonout"
	"github.com/alfredtools/go-alfred/xmlout"
)

func ExampleItemBuilder() {
	item, err := alfred.NewItemBuilder("Open project").
		Subtitle("in the editor").
		Arg("/src/project").
		Build()
	if err != nil {
		log.Fatal(err)
	}

	if err := jsonout.WriteItems(os.Stdout, []alfred.Item{item}); err != nil {
		log.Fatal(err)
	}
	// Output:
	// {"items":[{"title":"Open project","subtitle":"in the editor","arg":"/src/project"}]}
}

func Example_legacyXMLFeedback() {
	item := alfred.NewItem("Hello <World>")

	if err := xmlout.WriteItems(os.Stdout, []alfred.Item{item}); err != nil {
		log.Fatal(err)
	}
	// Output:
	// <?xml version="1.0" encoding="UTF-8"?>
	// <items>
	//     <item>
	//         <title>Hello &lt;World&gt;</title>
	//     </item>
	// </items>
}
