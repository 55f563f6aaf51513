package domain

// KeyPrefix namespaces all placedex keys in the shared store.
const KeyPrefix = "placedex:"
