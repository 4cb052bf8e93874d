// SPDX-License-Identifier: BSD-2-Clause

/*
Package editable extracts and rewrites the user-editable fields of a YAML document.

A field is editable when its line carries the "##editable" trailing comment:

	spec:
	  replicas: 2  ##editable
	  image: "nginx:1.25" ##editable pinned by the platform team

The parser is line based and permissive: it does not parse YAML, it never fails,
and lines it cannot make sense of are skipped. Each field is identified by a key
derived from its line index and its name, so the same name may appear on several
lines and each occurrence is edited independently.

Keys are only stable as long as the document keeps its line structure. Inserting
or deleting lines between Extract and Reconstruct invalidates them.
*/
package editable
