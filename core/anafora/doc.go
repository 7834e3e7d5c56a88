// Package anafora is the annotation document model: spans, entities and
// relations, the Anafora XML loader, the schema validity checker, and corpus
// traversal.
//
// # Data
//
// An Anafora XML file holds entities and relations:
//
//	<data><annotations>
//	  <entity><id>1@e@doc@gold</id><span>0,5</span><type>Person</type>
//	    <properties><name>Alice</name></properties></entity>
//	  <relation><id>2@r@doc@gold</id><type>Knows</type>
//	    <properties><Source>1@e@doc@gold</Source></properties></relation>
//	</annotations></data>
//
// Property text that names another annotation's ID becomes a reference.
// A relation's extent is derived from the annotations it references.
//
// # Schema
//
// Schema.Errors reports annotations that violate the schema. Corpus loaders
// remove them and re-check until the document is valid.
package anafora
