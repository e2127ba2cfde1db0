// Package dynprop exposes runtime-defined properties to a generic
// property-editing host.
//
// A producer describes each property with a [PropertySpec], collects the specs
// in a [Collection] and hands the collection to a [DynamicProperty]. The host
// enumerates [Descriptor] values from the DynamicProperty, one per spec in
// collection order, and reads or writes values through them. Descriptors hold
// no values: every read and write is routed to the listeners registered with
// [DynamicProperty.OnGetValue] and [DynamicProperty.OnSetValue], which resolve
// the spec against whatever object is actually being edited.
//
// Nothing in this package is safe for concurrent use. A DynamicProperty and
// its Collection belong to one binding at a time.
package dynprop
