package shopify

// OrderListQuery is the one order query every list surface shares: the order
// index, phone search, report listing and the Excel export all page over it.
const OrderListQuery = `
query OrderListData($ordersFirst: Int, $ordersLast: Int, $before: String, $after: String, $sortKey: OrderSortKeys, $reverse: Boolean, $query: String) {
  orders(
    first: $ordersFirst
    after: $after
    last: $ordersLast
    before: $before
    sortKey: $sortKey
    reverse: $reverse
    query: $query
  ) {
    edges {
      cursor
      node {
        id
        name
        createdAt
        processedAt
        note
        displayFinancialStatus
        displayFulfillmentStatus
        lineItems(first: 40) {
          nodes {
            name
            quantity
            variant {
              price
            }
            variantTitle
          }
        }
        shippingAddress {
          firstName
          lastName
          address1
          address2
          city
          company
          phone
        }
        billingAddress {
          firstName
          lastName
          address1
          address2
          phone
          city
        }
        currentTotalPriceSet {
          shopMoney {
            amount
            currencyCode
          }
        }
        fulfillmentOrders(first: 1) {
          edges {
            node {
              id
            }
          }
        }
        shippingLine {
          id
          title
        }
        currentSubtotalLineItemsQuantity
        tags
        customer {
          id
          email
          firstName
          lastName
        }
      }
    }
    pageInfo {
      hasPreviousPage
      startCursor
      hasNextPage
      endCursor
    }
  }
}
`
