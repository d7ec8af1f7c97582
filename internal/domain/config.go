package domain

// KeyPrefix namespaces every key unidesk writes to the store.
const KeyPrefix = "unidesk:"
