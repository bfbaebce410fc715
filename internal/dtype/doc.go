// Package dtype defines the type vocabulary of the casting engine: the
// closed Kind enumeration, immutable Descriptor value objects, the sealed
// Scalar variant set with its three null markers, the extension capability
// contracts, and the structured error taxonomy.
//
// ARCHITECTURE:
//
// Closed kind set:
// Every promotion and cast rule elsewhere in the module is a total switch
// over (source Kind, target Kind) pairs. Pairs with no dedicated rule are
// routed to KindObject, the lattice's safe top element - that fallback is
// policy, never an error.
//
// Null representation per kind:
// float/complex use NaN, temporal kinds use the reserved NullCount
// sentinel, object/extension use the Missing marker (or the extension's
// declared null), and bool/int/uint have no in-band null at all - holding
// a null forces widening, decided by the promote package.
//
// Immutability:
// Descriptors and scalars are value objects. Nothing in this package
// mutates after construction, which is what makes the engine stateless
// and reentrant.
package dtype
