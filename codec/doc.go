// Package codec provides the content encodings a store can use for documents.
//
// Every codec implements Encode, Decode and MediaType. JSON is the default codec of
// a store; CBOR and YAML are alternatives, and Zstd compresses the output of another
// codec.
package codec
