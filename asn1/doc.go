/*
Package asn1 implements an ASN.1 value model and a pair of binary codecs
for the Basic Encoding Rules (BER) and Distinguished Encoding Rules (DER)
defined by [ITU-T Rec. X.690].

The package is meant to back higher-level protocol stacks (LDAP, X.509,
Kerberos, ...) that need to produce and consume tag-length-value byte
streams. It does not implement CER, indefinite-length encodings, REAL,
EXTERNAL/EMBEDDED PDV, or ASN.1 schema compilation; see SPEC_FULL.md in
the repository root for the full scope statement.

[ITU-T Rec. X.690]: https://www.itu.int/rec/T-REC-X.690
*/
package asn1
