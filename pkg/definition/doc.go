// Package definition models the declarative form document: a small tree of
// named nodes (form, fields, fieldset, field, option) carrying string
// attributes, together with the loaders, encoders and merge helpers that the
// form package relies on.
//
// The tree is intentionally generic. It knows nothing about field types,
// validation or rendering; it only offers the navigation primitives used by
// the lookup index (parent links, ancestor group chains, descendant walks) and
// the attribute-level merge algorithm used when several documents are combined.
//
// # Document format
//
//	<form>
//	  <fieldset name="main" label="..." description="..."/>
//	  <fields name="user">
//	    <field name="email" type="email" required="true" validate="email"/>
//	    <fields name="address">
//	      <field name="city" type="text"/>
//	    </fields>
//	  </fields>
//	</form>
//
// A fields element carrying a name attribute establishes a group; nesting
// composes a dot separated group path such as "user.address". Attribute values
// are always strings and booleans use the literals "true" and "false".
//
// # Loading
//
// Parse reads the XML form of the document. Generator builds the same tree from
// a fieldset oriented description, and LoadYAML feeds a Generator from YAML:
//
//	fieldsets:
//	  - name: main
//	    fields:
//	      - name: email
//	        type: email
//	        required: true
//
// LoadFile dispatches on the file extension (.xml, .yaml, .yml).
//
// # Merging
//
// MergeNodes overwrites attributes that already exist, appends unknown child
// nodes and recurses into same-named children; field nodes are merged at the
// attribute level only.
package definition
