// Package transform turns CSV-ish lines carrying flat JSON matrices into
// rotated output records.
//
// The first input line, whatever it contains, triggers the header
// "id,json,is_valid" and is otherwise ignored. Every later line is split at
// its first comma into an id and a payload; the payload loses one leading
// and one trailing double quote, is parsed as a square matrix, rotated, and
// written back as
//
//	<id>,"<json>",<true|false>
//
// where <json> is "[]" and the flag false when the payload is malformed. A
// malformed payload never stops processing, so every data line produces
// exactly one record, in input order.
//
// Emitted lines carry no terminator; the caller adds one per line.
package transform
