package bot

// Fixed restaurant content. The menu text doubles as the domain restriction
// context handed to the reply provider.

const MenuText = `Demo Restaurant menu:

Starters: Garlic Bread ($5), Spring Rolls ($6)
Mains: Margherita Pizza ($12), Pasta Alfredo ($13), Classic Burger ($11)
Desserts: Ice Cream ($4), Chocolate Brownie ($6)
Drinks: Coke ($2), Lemonade ($3)

Open daily 11:00-22:00. Address: 350 5th Ave, New York, NY 10118.`

const (
	mainMenuBody   = "🍽️ Welcome to Demo Restaurant! What would you like to do?"
	foodListBody   = "Choose a category:"
	thankYouReply  = "You're welcome! Happy to help. 😊"
	bookTableReply = "How many guests? (Demo only)"

	menuDocumentURL = "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf"
	offersImageURL  = "https://www.w3schools.com/w3images/pizza.jpg"
)

var demoMediaURLs = map[MediaKind]string{
	MediaImage:    offersImageURL,
	MediaVideo:    "https://www.w3schools.com/html/mov_bbb.mp4",
	MediaAudio:    "https://www2.cs.uic.edu/~i101/SoundFiles/StarWars60.wav",
	MediaDocument: menuDocumentURL,
	MediaSticker:  "https://www.gstatic.com/webp/gallery/1.sm.webp",
}

func mainMenuPrompt() ButtonPrompt {
	return ButtonPrompt{
		Body: mainMenuBody,
		Buttons: []Button{
			{ID: "order_food", Title: "Order Food"},
			{ID: "book_table", Title: "Table Booking"},
			{ID: "view_menu", Title: "View Menu"},
			{ID: "contact_us", Title: "Contact Us"},
			{ID: "offers", Title: "Special Offers"},
		},
	}
}

func foodListPrompt() ListPrompt {
	return ListPrompt{
		Body:        foodListBody,
		ButtonLabel: "Select Category",
		Sections: []ListSection{
			{
				Title: "Menu Categories",
				Rows: []ListRow{
					{ID: "starters", Title: "Starters", Description: "Garlic Bread, Spring Rolls"},
					{ID: "mains", Title: "Mains", Description: "Pizza, Pasta, Burgers"},
					{ID: "desserts", Title: "Desserts", Description: "Ice Cream, Brownie"},
					{ID: "drinks", Title: "Drinks", Description: "Coke, Lemonade"},
				},
			},
		},
	}
}

func restaurantLocation() Location {
	return Location{
		Latitude:  "40.748817",
		Longitude: "-73.985428",
		Name:      "Demo Restaurant",
		Address:   "350 5th Ave, New York, NY 10118",
	}
}

func restaurantContact() ContactCard {
	return ContactCard{
		FormattedName: "Demo Restaurant",
		FirstName:     "Demo",
		LastName:      "Restaurant",
		Phone:         "+15551234567",
		Email:         "info@demorestaurant.com",
	}
}

// foodCategories maps list-reply ids to their display titles.
var foodCategories = map[string]string{
	"starters": "Starters",
	"mains":    "Mains",
	"desserts": "Desserts",
	"drinks":   "Drinks",
}
