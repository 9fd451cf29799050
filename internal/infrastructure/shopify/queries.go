package shopify

// GraphQL documents for the Shopify Admin API. The response shapes they
// select are mirrored by the envelope types in types.go.

const productCreateMutation = `
mutation ProductCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
      title
    }
    userErrors {
      field
      message
    }
  }
}`

const productVariantsBulkCreateMutation = `
mutation ProductVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkCreate(productId: $productId, variants: $variants) {
    productVariants {
      id
      title
    }
    userErrors {
      field
      message
    }
  }
}`

const productCreateMediaMutation = `
mutation ProductCreateMedia($productId: ID!, $media: [CreateMediaInput!]!) {
  productCreateMedia(productId: $productId, media: $media) {
    media {
      alt
      mediaContentType
    }
    mediaUserErrors {
      field
      message
    }
  }
}`

const metafieldsSetMutation = `
mutation MetafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
      key
      namespace
    }
    userErrors {
      field
      message
    }
  }
}`

const productUpdateWithMediaMutation = `
mutation ProductUpdateWithMedia($input: ProductInput!, $media: [CreateMediaInput!]) {
  productUpdate(input: $input, media: $media) {
    product {
      id
      title
    }
    userErrors {
      field
      message
    }
  }
}`

const productDeleteMutation = `
mutation ProductDelete($input: ProductDeleteInput!) {
  productDelete(input: $input) {
    deletedProductId
    userErrors {
      field
      message
    }
  }
}`

const orderCreateMutation = `
mutation OrderCreate($order: OrderCreateOrderInput!, $options: OrderCreateOptionsInput) {
  orderCreate(order: $order, options: $options) {
    order {
      id
      email
    }
    userErrors {
      field
      message
    }
  }
}`

const orderDeleteMutation = `
mutation OrderDelete($orderId: ID!) {
  orderDelete(orderId: $orderId) {
    deletedId
    userErrors {
      field
      message
    }
  }
}`

const orderMarkAsPaidMutation = `
mutation OrderMarkAsPaid($input: OrderMarkAsPaidInput!) {
  orderMarkAsPaid(input: $input) {
    order {
      id
      displayFinancialStatus
    }
    userErrors {
      field
      message
    }
  }
}`

const orderDetailsQuery = `
query GetOrderDetails($orderId: ID!) {
  order(id: $orderId) {
    id
    name
    email
    totalPriceSet {
      shopMoney {
        amount
        currencyCode
      }
    }
    customer {
      firstName
      lastName
      email
    }
    billingAddress {
      firstName
      lastName
      company
      address1
      address2
      city
      province
      country
      zip
      phone
    }
  }
}`

const activeProductsQuery = `
query ActiveProducts {
  products(first: 100, query: "published_status:published") {
    edges {
      node {
        id
        title
        description
        tags
        priceRange {
          minVariantPrice {
            amount
          }
        }
        images(first: 10) {
          edges {
            node {
              url
            }
          }
        }
        variants(first: 100) {
          edges {
            node {
              id
              title
              sku
              price
            }
          }
        }
      }
    }
  }
}`

const productVariantsQuery = `
query GetProductVariants($productId: ID!) {
  product(id: $productId) {
    variants(first: 100) {
      edges {
        node {
          id
          title
          sku
          price
        }
      }
    }
  }
}`
