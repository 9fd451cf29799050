package shopify

import "encoding/json"

// graphQLRequest is the POST body of an Admin API call.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphQLResponse is the outer envelope. Data is decoded per call.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// userError is the mutation-level error Shopify returns inside Data.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type productNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type variantNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
}

type orderNode struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type moneyNode struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type addressNode struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type customerNode struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type productCreateData struct {
	ProductCreate struct {
		Product    *productNode `json:"product"`
		UserErrors []userError  `json:"userErrors"`
	} `json:"productCreate"`
}

type productVariantsBulkCreateData struct {
	ProductVariantsBulkCreate struct {
		ProductVariants []variantNode `json:"productVariants"`
		UserErrors      []userError   `json:"userErrors"`
	} `json:"productVariantsBulkCreate"`
}

type productCreateMediaData struct {
	ProductCreateMedia struct {
		MediaUserErrors []userError `json:"mediaUserErrors"`
	} `json:"productCreateMedia"`
}

type metafieldsSetData struct {
	MetafieldsSet struct {
		UserErrors []userError `json:"userErrors"`
	} `json:"metafieldsSet"`
}

type productUpdateData struct {
	ProductUpdate struct {
		Product    *productNode `json:"product"`
		UserErrors []userError  `json:"userErrors"`
	} `json:"productUpdate"`
}

type productDeleteData struct {
	ProductDelete struct {
		DeletedProductID string      `json:"deletedProductId"`
		UserErrors       []userError `json:"userErrors"`
	} `json:"productDelete"`
}

type orderCreateData struct {
	OrderCreate struct {
		Order      *orderNode  `json:"order"`
		UserErrors []userError `json:"userErrors"`
	} `json:"orderCreate"`
}

type orderDeleteData struct {
	OrderDelete struct {
		DeletedID  string      `json:"deletedId"`
		UserErrors []userError `json:"userErrors"`
	} `json:"orderDelete"`
}

type orderMarkAsPaidData struct {
	OrderMarkAsPaid struct {
		Order      *orderNode  `json:"order"`
		UserErrors []userError `json:"userErrors"`
	} `json:"orderMarkAsPaid"`
}

type orderDetailsData struct {
	Order *struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		TotalPriceSet struct {
			ShopMoney moneyNode `json:"shopMoney"`
		} `json:"totalPriceSet"`
		Customer       *customerNode `json:"customer"`
		BillingAddress *addressNode  `json:"billingAddress"`
	} `json:"order"`
}

type variantEdges struct {
	Edges []struct {
		Node variantNode `json:"node"`
	} `json:"edges"`
}

type activeProductsData struct {
	Products struct {
		Edges []struct {
			Node struct {
				ID          string   `json:"id"`
				Title       string   `json:"title"`
				Description string   `json:"description"`
				Tags        []string `json:"tags"`
				PriceRange  struct {
					MinVariantPrice struct {
						Amount string `json:"amount"`
					} `json:"minVariantPrice"`
				} `json:"priceRange"`
				Images struct {
					Edges []struct {
						Node struct {
							URL string `json:"url"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"images"`
				Variants variantEdges `json:"variants"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productVariantsData struct {
	Product *struct {
		Variants variantEdges `json:"variants"`
	} `json:"product"`
}
